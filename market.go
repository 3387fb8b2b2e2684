package basket

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateExchange is an Exchange backed by a table of reference prices: for
// each asset, how many reference base units one of its base units is worth.
// Swaps move funds through the bank's ledgers against the exchange's own
// liquidity account, charging an optional spread in basis points.
//
// The reference asset always has an implicit rate of 1.
type RateExchange struct {
	bank      *Bank
	ref       string
	account   string
	spreadBps int64
	rates     map[string]decimal.Decimal

	now func() time.Time
}

// NewRateExchange creates an exchange trading out of account against bank's
// ledgers, pricing every asset in ref units.
func NewRateExchange(bank *Bank, ref, account string) *RateExchange {
	return &RateExchange{
		bank:    bank,
		ref:     ref,
		account: account,
		rates:   make(map[string]decimal.Decimal),
		now:     time.Now,
	}
}

// SetSpread sets the spread charged on every swap, in basis points.
func (x *RateExchange) SetSpread(bps int64) { x.spreadBps = bps }

// SetRate sets the price of one base unit of asset in reference base units.
func (x *RateExchange) SetRate(asset string, rate decimal.Decimal) {
	x.rates[asset] = rate
}

// Rate returns the reference price for asset, and whether one is known.
func (x *RateExchange) Rate(asset string) (decimal.Decimal, bool) {
	if asset == x.ref {
		return decimal.NewFromInt(1), true
	}
	r, ok := x.rates[asset]
	return r, ok
}

// Account returns the exchange's liquidity account identity.
func (x *RateExchange) Account() string { return x.account }

// ReferenceAsset implements Exchange.
func (x *RateExchange) ReferenceAsset() string { return x.ref }

// Quote implements Exchange. The result truncates at each of the two rate
// applications, the same rounding a Swap applies.
func (x *RateExchange) Quote(amountIn Amount, assetIn, assetOut string) (Amount, error) {
	if assetIn == assetOut || amountIn.IsZero() {
		return amountIn, nil
	}
	in, ok := x.Rate(assetIn)
	if !ok {
		return Amount{}, fmt.Errorf("no rate for asset %q: %w", assetIn, ErrUnknownAsset)
	}
	out, ok := x.Rate(assetOut)
	if !ok {
		return Amount{}, fmt.Errorf("no rate for asset %q: %w", assetOut, ErrUnknownAsset)
	}
	refValue := amountIn.Decimal().Mul(in).Truncate(0)
	q, _ := refValue.QuoRem(out, 0)
	return A(q), nil
}

// Swap implements Exchange: it pulls amountIn of assetIn from recipient into
// the exchange account and pays out the quoted amount of assetOut, minus the
// spread, from its own liquidity.
func (x *RateExchange) Swap(amountIn, minAmountOut Amount, assetIn, assetOut, recipient string, deadline time.Time) (Amount, error) {
	if expired(x.now(), deadline) {
		return Amount{}, fmt.Errorf("swap %s to %s: %w", assetIn, assetOut, ErrDeadlineExpired)
	}
	if assetIn == assetOut || amountIn.IsZero() {
		return amountIn, nil
	}
	quoted, err := x.Quote(amountIn, assetIn, assetOut)
	if err != nil {
		return Amount{}, err
	}
	amountOut := quoted.Mul(A(10_000 - x.spreadBps)).Quo(A(10_000))
	if amountOut.LessThan(minAmountOut) {
		return Amount{}, fmt.Errorf("swap %s to %s: output %s below minimum %s", assetIn, assetOut, amountOut, minAmountOut)
	}

	tin, err := x.bank.token(assetIn)
	if err != nil {
		return Amount{}, err
	}
	tout, err := x.bank.token(assetOut)
	if err != nil {
		return Amount{}, err
	}
	if err := tin.Transfer(recipient, x.account, amountIn); err != nil {
		return Amount{}, err
	}
	if err := tout.Transfer(x.account, recipient, amountOut); err != nil {
		// exchange liquidity exhausted; the engine rolls the pull back.
		return Amount{}, fmt.Errorf("exchange out of %s liquidity: %w", assetOut, err)
	}
	return amountOut, nil
}
