// Package renderer turns fund state and journal records into markdown
// reports suitable for terminal display or archiving.
package renderer

import (
	"os"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/basket"
)

// Now is the current time used in reports.
// it has to be a global variable so that tests can override it.
func Now() time.Time {
	if os.Getenv("BASKET_TESTING_NOW") != "" {
		t, err := time.Parse("2006-01-02 15:04:05", os.Getenv("BASKET_TESTING_NOW"))
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// Cash formats a base-unit amount of the given token using the locale
// conventions of its symbol. Symbols unknown to the currency table fall back
// to a plain two-digit rendering.
func Cash(a basket.Amount, t *basket.Token) string {
	if t == nil {
		return a.String()
	}
	cur := *money.New(0, t.Symbol()).Currency()
	major := a.Decimal().Shift(-int32(t.Decimals()))
	return cur.Formatter().Format(major.Shift(int32(cur.Fraction)).IntPart())
}

// Units formats a base-unit amount as a major-unit decimal, without any
// currency styling. Used for quantities of non-monetary assets and shares.
func Units(a basket.Amount, t *basket.Token) string {
	if t == nil {
		return a.String()
	}
	return a.Decimal().Shift(-int32(t.Decimals())).String()
}
