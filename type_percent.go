package basket

import "fmt"

// Percent is an integer percentage. Basket weights and the withdrawal fee
// rate are whole percents in [0, 100].
type Percent int

// InRange reports whether p lies in [0, 100].
func (p Percent) InRange() bool { return p >= 0 && p <= 100 }

// Of returns amount*p/100, truncating.
func (p Percent) Of(amount Amount) Amount {
	return amount.Mul(A(int(p))).Quo(A(100))
}

func (p Percent) String() string {
	return fmt.Sprintf("%d%%", int(p))
}
