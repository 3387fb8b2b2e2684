package basket

import (
	"fmt"
	"time"
)

// Exchange is the external conversion service the engine consumes. It prices
// every supported asset against a distinguished reference asset, which also
// serves as the universal intermediate hop for asset-to-asset conversion.
//
// Exchange implementations are untrusted code: the engine guards itself
// against reentrancy and rolls back on any swap failure.
type Exchange interface {
	// ReferenceAsset returns the identifier of the common pricing asset.
	ReferenceAsset() string
	// Quote returns how many base units of assetOut amountIn base units of
	// assetIn are worth, without moving funds.
	Quote(amountIn Amount, assetIn, assetOut string) (Amount, error)
	// Swap converts amountIn of assetIn into assetOut on recipient's
	// balance. It fails if the result would be below minAmountOut or if
	// deadline has passed (a zero deadline never expires).
	Swap(amountIn, minAmountOut Amount, assetIn, assetOut, recipient string, deadline time.Time) (Amount, error)
}

// converter routes conversions through the exchange's reference asset:
// direct swap when either side is the reference, a two-hop swap otherwise.
// Same-asset conversions and zero amounts are no-ops.
type converter struct {
	x Exchange
}

// quote values amountIn of assetIn in assetOut units without moving funds.
func (c converter) quote(amountIn Amount, assetIn, assetOut string) (Amount, error) {
	if assetIn == assetOut || amountIn.IsZero() {
		return amountIn, nil
	}
	ref := c.x.ReferenceAsset()
	if assetIn == ref || assetOut == ref {
		return c.x.Quote(amountIn, assetIn, assetOut)
	}
	mid, err := c.x.Quote(amountIn, assetIn, ref)
	if err != nil {
		return Amount{}, err
	}
	return c.x.Quote(mid, ref, assetOut)
}

// convert swaps amountIn of assetIn into assetOut on recipient's balance.
// The deadline bounds how long the instructions stay valid; slippage control
// per hop is left to the caller's deadline since quotes and swaps execute in
// the same sequential request.
func (c converter) convert(amountIn Amount, assetIn, assetOut, recipient string, deadline time.Time) (Amount, error) {
	if assetIn == assetOut || amountIn.IsZero() {
		return amountIn, nil
	}
	ref := c.x.ReferenceAsset()
	if assetIn == ref || assetOut == ref {
		out, err := c.x.Swap(amountIn, Amount{}, assetIn, assetOut, recipient, deadline)
		if err != nil {
			return Amount{}, fmt.Errorf("swap %s %s to %s: %w", amountIn, assetIn, assetOut, err)
		}
		return out, nil
	}
	mid, err := c.x.Swap(amountIn, Amount{}, assetIn, ref, recipient, deadline)
	if err != nil {
		return Amount{}, fmt.Errorf("swap %s %s to %s: %w", amountIn, assetIn, ref, err)
	}
	out, err := c.x.Swap(mid, Amount{}, ref, assetOut, recipient, deadline)
	if err != nil {
		return Amount{}, fmt.Errorf("swap %s %s to %s: %w", mid, ref, assetOut, err)
	}
	return out, nil
}

// expired reports whether a caller-supplied deadline has passed at now. The
// zero deadline means no expiry.
func expired(now, deadline time.Time) bool {
	return !deadline.IsZero() && now.After(deadline)
}
