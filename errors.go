package basket

import "errors"

// Every failure surfaced by the engine wraps one of these sentinel values, so
// callers can inspect the reason with errors.Is. All of them are detected
// before any mutation takes effect: a failed request leaves no observable
// state change.
var (
	// ErrFeatureDisabled rejects deposits or withdrawals while the matching
	// administrative flag is off.
	ErrFeatureDisabled = errors.New("basket: feature disabled")
	// ErrInsufficientAllowance rejects a deposit the caller has not
	// pre-authorized on the reserve ledger.
	ErrInsufficientAllowance = errors.New("basket: insufficient allowance")
	// ErrInsufficientBalance rejects a request exceeding the caller's funds,
	// shares, or withdrawable value.
	ErrInsufficientBalance = errors.New("basket: insufficient balance")
	// ErrInvalidPercentage rejects a percentage outside [0, 100].
	ErrInvalidPercentage = errors.New("basket: invalid percentage")
	// ErrInvalidFeeRate rejects a fee rate outside [0, 100].
	ErrInvalidFeeRate = errors.New("basket: invalid fee rate")
	// ErrStrategyMismatch rejects a strategy whose asset and weight tables
	// disagree in length, whose weights do not sum to 100, or whose assets
	// are not unique.
	ErrStrategyMismatch = errors.New("basket: strategy mismatch")
	// ErrEmptyStrategy rejects an operation that requires a configured basket.
	ErrEmptyStrategy = errors.New("basket: empty strategy")
	// ErrUnauthorized rejects an admin-only operation from a non-admin caller.
	ErrUnauthorized = errors.New("basket: unauthorized")
	// ErrDeadlineExpired rejects conversion instructions past their deadline.
	ErrDeadlineExpired = errors.New("basket: deadline expired")
	// ErrReentrantCall rejects a mutating call issued while another request
	// is still executing, typically from inside an exchange callback.
	ErrReentrantCall = errors.New("basket: reentrant call")
	// ErrUnknownAsset rejects an operation naming an asset with no ledger or
	// no exchange rate.
	ErrUnknownAsset = errors.New("basket: unknown asset")
)
