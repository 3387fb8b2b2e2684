package basket

import (
	"fmt"
	"time"
)

// Fixed-point scales of the engine's share math. The bootstrap scale fixes
// the very first mint's price level and is part of the engine's numeric
// contract; it is deliberately not derived from the reserve's decimals.
var (
	priceScale     = A(int64(1_000_000_000_000_000_000)) // 1e18, share price scaling
	bootstrapScale = A(int64(1_000_000_000_000_000))     // 1e15, first mint per reserve base unit
	fractionScale  = A(int64(10_000_000_000))            // 1e10, withdraw fraction precision
)

// Fund is a basket-backed fund: it custodies a weighted basket of assets
// bought with depositors' reserve currency and tracks each depositor's claim
// through a fungible share token.
//
// Requests against a Fund are strictly sequential. Every mutating entry
// point holds a reentrancy guard, checks all preconditions before touching
// state, and rolls the whole request back if a conversion fails midway, so a
// failed request leaves no observable effect.
type Fund struct {
	owner   string // administrative identity, receives withdrawal fees
	account string // custody account on the asset ledgers
	reserve string // asset id of the deposit/payout currency

	bank     *Bank
	shares   *Token
	exchange Exchange
	conv     converter

	strategy    Strategy
	fee         Percent
	deposits    bool
	withdrawals bool
	maxAssets   int

	locked  bool
	journal *Journal
	now     func() time.Time
}

// NewFund creates a fund custodying assets on bank, converting through x,
// denominated in the reserve asset. The share token is created with the
// given human-readable name and symbol and 18 fractional digits. The basket
// starts empty; deposits convert nothing until a strategy is configured.
func NewFund(bank *Bank, x Exchange, owner, reserve, shareName, shareSymbol string) (*Fund, error) {
	if owner == "" {
		return nil, fmt.Errorf("fund owner identity is required")
	}
	if _, err := bank.token(reserve); err != nil {
		return nil, fmt.Errorf("reserve asset: %w", err)
	}
	return &Fund{
		owner:       owner,
		account:     "fund:" + shareSymbol,
		reserve:     reserve,
		bank:        bank,
		shares:      NewToken(shareName, shareSymbol, 18),
		exchange:    x,
		conv:        converter{x},
		deposits:    true,
		withdrawals: true,
		maxAssets:   DefaultMaxAssets,
		journal:     NewJournal(),
		now:         time.Now,
	}, nil
}

func (f *Fund) Owner() string   { return f.owner }
func (f *Fund) Account() string { return f.account }
func (f *Fund) Reserve() string { return f.reserve }

// Bank returns the asset ledger the fund operates on.
func (f *Fund) Bank() *Bank { return f.bank }

// Exchange returns the conversion venue the fund trades on.
func (f *Fund) Exchange() Exchange { return f.exchange }

// Shares returns the fund's share token ledger.
func (f *Fund) Shares() *Token { return f.shares }

// Journal returns the fund's append-only audit journal.
func (f *Fund) Journal() *Journal { return f.journal }

// Strategy returns the current basket composition.
func (f *Fund) Strategy() Strategy { return f.strategy }

// FeeRate returns the withdrawal fee in whole percents.
func (f *Fund) FeeRate() Percent { return f.fee }

func (f *Fund) DepositsEnabled() bool    { return f.deposits }
func (f *Fund) WithdrawalsEnabled() bool { return f.withdrawals }

// enter takes the reentrancy guard for the duration of a mutating request.
func (f *Fund) enter() (release func(), err error) {
	if f.locked {
		return nil, fmt.Errorf("a request is already executing: %w", ErrReentrantCall)
	}
	f.locked = true
	return func() { f.locked = false }, nil
}

// checkpoint captures everything a mutating request may touch, so a failure
// after the first effect can restore the world exactly.
type checkpoint struct {
	bank     map[string]*Token
	shares   *Token
	strategy Strategy
	records  int
}

func (f *Fund) begin() checkpoint {
	return checkpoint{
		bank:     f.bank.snapshot(),
		shares:   f.shares.Clone(),
		strategy: f.strategy,
		records:  f.journal.Len(),
	}
}

func (f *Fund) rollback(cp checkpoint) {
	f.bank.restore(cp.bank)
	f.shares.restoreFrom(cp.shares)
	f.strategy = cp.strategy
	f.journal.truncate(cp.records)
}

// Deposit pulls amount of pre-authorized reserve currency from caller,
// converts it into the basket's weighted assets, and mints shares so that
// existing holders' per-share claim is unchanged. It returns the number of
// share base units minted.
//
// The first-ever mint (and any mint while the share price is zero) uses the
// bootstrap rate amount*1e15, since no prior price exists.
func (f *Fund) Deposit(caller string, amount Amount, deadline time.Time) (minted Amount, err error) {
	release, err := f.enter()
	if err != nil {
		return Amount{}, err
	}
	defer release()

	if !f.deposits {
		return Amount{}, fmt.Errorf("deposits are disabled: %w", ErrFeatureDisabled)
	}
	if expired(f.now(), deadline) {
		return Amount{}, fmt.Errorf("deposit: %w", ErrDeadlineExpired)
	}
	if amount.IsNegative() {
		return Amount{}, fmt.Errorf("deposit of negative amount %s: %w", amount, ErrInsufficientBalance)
	}
	reserve, err := f.bank.token(f.reserve)
	if err != nil {
		return Amount{}, err
	}
	if reserve.Allowance(caller, f.account).LessThan(amount) {
		return Amount{}, fmt.Errorf("deposit of %s %s not pre-authorized by %q: %w", amount, f.reserve, caller, ErrInsufficientAllowance)
	}
	if reserve.BalanceOf(caller).LessThan(amount) {
		return Amount{}, fmt.Errorf("deposit of %s exceeds %s balance of %q: %w", amount, f.reserve, caller, ErrInsufficientBalance)
	}

	cp := f.begin()
	defer func() {
		if err != nil {
			f.rollback(cp)
		}
	}()

	// Price snapshot before holdings change: the mint formula needs the
	// pre-deposit per-share value.
	priceBefore, err := f.SharePrice()
	if err != nil {
		return Amount{}, err
	}
	if err = reserve.TransferFrom(f.account, caller, f.account, amount); err != nil {
		return Amount{}, err
	}
	if err = f.deployReserve(amount, deadline); err != nil {
		return Amount{}, err
	}

	supply := f.shares.TotalSupply()
	if supply.IsZero() || priceBefore.IsZero() {
		minted = amount.Mul(bootstrapScale)
	} else {
		value, verr := f.BasketValue()
		if verr != nil {
			return Amount{}, verr
		}
		// Supply that keeps the pre-deposit price over the post-deposit
		// value; the difference is exactly the dilution-free mint.
		minted = value.Mul(priceScale).Quo(priceBefore).Sub(supply)
		if minted.IsNegative() {
			// conversion cost ate more than the deposit brought in
			minted = Amount{}
		}
	}
	f.shares.Mint(caller, minted)
	f.journal.append(DepositRecord{
		baseRecord:     stamp(RecordDeposit, f.now()),
		Depositor:      caller,
		AmountIn:       amount,
		SharesMinted:   minted,
		NewTotalSupply: f.shares.TotalSupply(),
	})
	return minted, nil
}

// WithdrawByAmount burns the fraction of the caller's shares whose gross
// value matches amount of reserve currency, liquidates that slice of the
// basket, and pays out the proceeds minus the fee. It returns the amount
// actually paid to the caller.
func (f *Fund) WithdrawByAmount(caller string, amount Amount, deadline time.Time) (paid Amount, err error) {
	release, err := f.enter()
	if err != nil {
		return Amount{}, err
	}
	defer release()

	if err := f.checkWithdraw(deadline); err != nil {
		return Amount{}, err
	}
	if amount.IsNegative() {
		return Amount{}, fmt.Errorf("withdraw of negative amount %s: %w", amount, ErrInsufficientBalance)
	}
	gross, net, _, err := f.HolderValue(caller)
	if err != nil {
		return Amount{}, err
	}
	if gross.IsZero() || net.LessThan(amount) {
		return Amount{}, fmt.Errorf("withdrawable value %s of %q is less than %s: %w", net, caller, amount, ErrInsufficientBalance)
	}

	balance := f.shares.BalanceOf(caller)
	fraction := amount.Mul(fractionScale).Quo(gross)
	toBurn := balance.Mul(fraction).Quo(fractionScale)

	cp := f.begin()
	defer func() {
		if err != nil {
			f.rollback(cp)
		}
	}()
	return f.withdrawShares(caller, toBurn, deadline)
}

// WithdrawByPercentage burns percent of the caller's shares, liquidates the
// matching slice of the basket, and pays out the proceeds minus the fee. It
// returns the amount paid to the caller.
func (f *Fund) WithdrawByPercentage(caller string, percent Percent, deadline time.Time) (paid Amount, err error) {
	release, err := f.enter()
	if err != nil {
		return Amount{}, err
	}
	defer release()

	if err := f.checkWithdraw(deadline); err != nil {
		return Amount{}, err
	}
	if !percent.InRange() {
		return Amount{}, fmt.Errorf("withdraw of %s: %w", percent, ErrInvalidPercentage)
	}
	toBurn := percent.Of(f.shares.BalanceOf(caller))

	cp := f.begin()
	defer func() {
		if err != nil {
			f.rollback(cp)
		}
	}()
	return f.withdrawShares(caller, toBurn, deadline)
}

func (f *Fund) checkWithdraw(deadline time.Time) error {
	if !f.withdrawals {
		return fmt.Errorf("withdrawals are disabled: %w", ErrFeatureDisabled)
	}
	if expired(f.now(), deadline) {
		return fmt.Errorf("withdraw: %w", ErrDeadlineExpired)
	}
	return nil
}

// withdrawShares is the common withdrawal primitive: it computes the
// caller's proportional slice of every basket asset, burns the shares before
// issuing any external conversion, converts the slice to reserve currency,
// and splits the proceeds between the caller and the owner's fee.
func (f *Fund) withdrawShares(caller string, toBurn Amount, deadline time.Time) (Amount, error) {
	supply := f.shares.TotalSupply()

	type slice struct {
		asset string
		qty   Amount
	}
	slices := make([]slice, 0, f.strategy.Len())
	for _, asset := range f.strategy.assets {
		t, err := f.bank.token(asset)
		if err != nil {
			return Amount{}, err
		}
		// held*toBurn/supply; supply is positive whenever toBurn is.
		qty := t.BalanceOf(f.account).Mul(toBurn).Quo(supply)
		slices = append(slices, slice{asset: asset, qty: qty})
	}

	// Burn before converting: a reentrant call from the exchange observes
	// the already-reduced balance and cannot spend these shares again.
	if err := f.shares.Burn(caller, toBurn); err != nil {
		return Amount{}, err
	}

	var total Amount
	for _, s := range slices {
		if s.qty.IsZero() {
			continue
		}
		if s.asset == f.reserve {
			total = total.Add(s.qty)
			continue
		}
		out, err := f.conv.convert(s.qty, s.asset, f.reserve, f.account, deadline)
		if err != nil {
			return Amount{}, fmt.Errorf("liquidating %s %s: %w", s.qty, s.asset, err)
		}
		total = total.Add(out)
	}

	fee := f.fee.Of(total)
	reserve, err := f.bank.token(f.reserve)
	if err != nil {
		return Amount{}, err
	}
	paid := total.Sub(fee)
	if err := reserve.Transfer(f.account, caller, paid); err != nil {
		return Amount{}, err
	}
	if err := reserve.Transfer(f.account, f.owner, fee); err != nil {
		return Amount{}, err
	}
	f.journal.append(WithdrawRecord{
		baseRecord:     stamp(RecordWithdraw, f.now()),
		Caller:         caller,
		AmountOut:      total,
		Fee:            fee,
		SharesBurned:   toBurn,
		NewTotalSupply: f.shares.TotalSupply(),
	})
	return paid, nil
}

// ChangeStrategy replaces the basket composition: it liquidates all current
// holdings to the reserve currency, installs the new asset and weight
// tables atomically, and redeploys the liquidated amount under the new
// weights. Share price and supply are untouched, up to conversion cost.
// Admin only.
func (f *Fund) ChangeStrategy(caller string, assets []string, weights []Percent, deadline time.Time) (err error) {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	if caller != f.owner {
		return fmt.Errorf("change strategy by %q: %w", caller, ErrUnauthorized)
	}
	if expired(f.now(), deadline) {
		return fmt.Errorf("change strategy: %w", ErrDeadlineExpired)
	}
	next, err := NewStrategy(assets, weights)
	if err != nil {
		return err
	}
	if next.Len() > f.maxAssets {
		return fmt.Errorf("basket of %d assets exceeds the cap of %d: %w", next.Len(), f.maxAssets, ErrStrategyMismatch)
	}
	for _, asset := range next.assets {
		if _, err := f.bank.token(asset); err != nil {
			return err
		}
	}

	cp := f.begin()
	defer func() {
		if err != nil {
			f.rollback(cp)
		}
	}()

	// The record captures old against new before any mutation.
	f.journal.append(StrategyChangeRecord{
		baseRecord: stamp(RecordStrategyChange, f.now()),
		OldAssets:  f.strategy.Assets(),
		OldWeights: f.strategy.Weights(),
		NewAssets:  next.Assets(),
		NewWeights: next.Weights(),
	})
	total, err := f.liquidate(deadline)
	if err != nil {
		return err
	}
	f.strategy = next
	return f.deployReserve(total, deadline)
}

// Rebalance liquidates the basket and redeploys it under the unchanged
// weight table, correcting the drift caused by differential price movement.
// Admin only; requires a configured basket.
func (f *Fund) Rebalance(caller string, deadline time.Time) (err error) {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	if caller != f.owner {
		return fmt.Errorf("rebalance by %q: %w", caller, ErrUnauthorized)
	}
	if expired(f.now(), deadline) {
		return fmt.Errorf("rebalance: %w", ErrDeadlineExpired)
	}
	if f.strategy.IsEmpty() {
		return fmt.Errorf("rebalance requires a configured basket: %w", ErrEmptyStrategy)
	}
	observed, err := f.ObservedWeights()
	if err != nil {
		return err
	}

	cp := f.begin()
	defer func() {
		if err != nil {
			f.rollback(cp)
		}
	}()

	f.journal.append(RebalanceRecord{
		baseRecord:      stamp(RecordRebalance, f.now()),
		Assets:          f.strategy.Assets(),
		WeightsObserved: observed,
	})
	total, err := f.liquidate(deadline)
	if err != nil {
		return err
	}
	return f.deployReserve(total, deadline)
}

// deployReserve converts total reserve currency held in custody into the
// strategy's assets, slice by slice in proportion to the configured weights.
// The reserve asset's own slice, if any, stays in place.
func (f *Fund) deployReserve(total Amount, deadline time.Time) error {
	for _, asset := range f.strategy.assets {
		slice := f.strategy.Weight(asset).Of(total)
		if slice.IsZero() || asset == f.reserve {
			continue
		}
		if _, err := f.conv.convert(slice, f.reserve, asset, f.account, deadline); err != nil {
			return fmt.Errorf("deploying %s %s into %s: %w", slice, f.reserve, asset, err)
		}
	}
	return nil
}

// liquidate converts every basket holding back to the reserve currency and
// returns the total, counting reserve-asset holdings at face value.
func (f *Fund) liquidate(deadline time.Time) (Amount, error) {
	var total Amount
	for _, asset := range f.strategy.assets {
		t, err := f.bank.token(asset)
		if err != nil {
			return Amount{}, err
		}
		held := t.BalanceOf(f.account)
		if held.IsZero() {
			continue
		}
		if asset == f.reserve {
			total = total.Add(held)
			continue
		}
		out, err := f.conv.convert(held, asset, f.reserve, f.account, deadline)
		if err != nil {
			return Amount{}, fmt.Errorf("liquidating %s %s: %w", held, asset, err)
		}
		total = total.Add(out)
	}
	return total, nil
}

// SetFeeRate sets the withdrawal fee in whole percents. Admin only.
func (f *Fund) SetFeeRate(caller string, fee Percent) error {
	if caller != f.owner {
		return fmt.Errorf("set fee rate by %q: %w", caller, ErrUnauthorized)
	}
	if !fee.InRange() {
		return fmt.Errorf("fee rate %s: %w", fee, ErrInvalidFeeRate)
	}
	f.fee = fee
	return nil
}

// SetDepositsEnabled gates the deposit entry point. Admin only.
func (f *Fund) SetDepositsEnabled(caller string, enabled bool) error {
	if caller != f.owner {
		return fmt.Errorf("set deposits enabled by %q: %w", caller, ErrUnauthorized)
	}
	f.deposits = enabled
	return nil
}

// SetWithdrawalsEnabled gates both withdrawal entry points. Admin only.
func (f *Fund) SetWithdrawalsEnabled(caller string, enabled bool) error {
	if caller != f.owner {
		return fmt.Errorf("set withdrawals enabled by %q: %w", caller, ErrUnauthorized)
	}
	f.withdrawals = enabled
	return nil
}
