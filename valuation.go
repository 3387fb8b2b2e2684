package basket

import "fmt"

// assetValue prices the fund's holding of one asset in reference units.
func (f *Fund) assetValue(asset string) (Amount, error) {
	t, err := f.bank.token(asset)
	if err != nil {
		return Amount{}, err
	}
	held := t.BalanceOf(f.account)
	value, err := f.conv.quote(held, asset, f.exchange.ReferenceAsset())
	if err != nil {
		return Amount{}, fmt.Errorf("valuing %s %s: %w", held, asset, err)
	}
	return value, nil
}

// BasketValue returns the total value of the custodied basket in reference
// asset base units. Holdings are queried live from each asset's ledger;
// nothing is cached.
func (f *Fund) BasketValue() (Amount, error) {
	var total Amount
	for _, asset := range f.strategy.assets {
		value, err := f.assetValue(asset)
		if err != nil {
			return Amount{}, err
		}
		total = total.Add(value)
	}
	return total, nil
}

// SharePrice returns the current value of one share, scaled by 1e18, in
// reference asset base units. It is zero while no share exists.
func (f *Fund) SharePrice() (Amount, error) {
	supply := f.shares.TotalSupply()
	if supply.IsZero() {
		return Amount{}, nil
	}
	value, err := f.BasketValue()
	if err != nil {
		return Amount{}, err
	}
	return value.Mul(priceScale).Quo(supply), nil
}

// HolderValue returns what holder's shares are worth in reserve currency
// base units: the gross value, the net value after the current withdrawal
// fee, and the fee itself. Read-only.
func (f *Fund) HolderValue(holder string) (gross, net, fee Amount, err error) {
	price, err := f.SharePrice()
	if err != nil {
		return Amount{}, Amount{}, Amount{}, err
	}
	refValue := f.shares.BalanceOf(holder).Mul(price).Quo(priceScale)
	gross, err = f.conv.quote(refValue, f.exchange.ReferenceAsset(), f.reserve)
	if err != nil {
		return Amount{}, Amount{}, Amount{}, err
	}
	fee = f.fee.Of(gross)
	return gross, gross.Sub(fee), fee, nil
}

// Holding is one basket asset's custodied quantity with its target weight.
type Holding struct {
	Asset    string
	Quantity Amount
	Weight   Percent
	Value    Amount
}

// BasketHoldings returns the custodied quantity of every basket asset, in
// configured order.
func (f *Fund) BasketHoldings() ([]Holding, error) {
	holdings := make([]Holding, 0, f.strategy.Len())
	for _, asset := range f.strategy.assets {
		t, err := f.bank.token(asset)
		if err != nil {
			return nil, err
		}
		value, err := f.assetValue(asset)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, Holding{
			Asset:    asset,
			Quantity: t.BalanceOf(f.account),
			Weight:   f.strategy.Weight(asset),
			Value:    value,
		})
	}
	return holdings, nil
}

// ObservedWeights returns each basket asset's actual share of the basket
// value in whole percents, truncating. All zero when the basket holds no
// value.
func (f *Fund) ObservedWeights() ([]Percent, error) {
	total, err := f.BasketValue()
	if err != nil {
		return nil, err
	}
	observed := make([]Percent, f.strategy.Len())
	if total.IsZero() {
		return observed, nil
	}
	for i, asset := range f.strategy.assets {
		value, err := f.assetValue(asset)
		if err != nil {
			return nil, err
		}
		observed[i] = Percent(value.Mul(A(100)).Quo(total).IntPart())
	}
	return observed, nil
}
