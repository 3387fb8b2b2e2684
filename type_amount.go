package basket

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount is a quantity of an asset or of shares, counted in integer base
// units. Division always truncates toward zero, so every formula built from
// Amount operations rounds down at each division exactly once.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from an integer count of base units.
func A[T int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a base-unit integer string into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsInteger() {
		return Amount{}, fmt.Errorf("invalid amount %q: not an integer number of base units", s)
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(b Amount) Amount { return Amount{value: a.value.Mul(b.value)} }

// Quo divides a by b truncating toward zero. Division by zero yields zero;
// callers guard the denominators that matter (supply, gross value).
func (a Amount) Quo(b Amount) Amount {
	if b.value.IsZero() {
		return Amount{}
	}
	q, _ := a.value.QuoRem(b.value, 0)
	return Amount{value: q}
}

func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) LessThanOrEqual(b Amount) bool    { return a.value.LessThanOrEqual(b.value) }
func (a Amount) GreaterThan(b Amount) bool        { return a.value.GreaterThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }

func (a Amount) String() string { return a.value.String() }

// IntPart returns the integer part of the amount as an int64. Base-unit
// amounts that fit an int64 round-trip exactly.
func (a Amount) IntPart() int64 { return a.value.IntPart() }

// Decimal returns the underlying decimal value, for presentation code that
// needs to shift by an asset's fractional digits.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// MarshalJSON implements the json.Marshaler interface for Amount.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.value.UnmarshalJSON(b)
}
