package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/basket"
)

// SummaryMarkdown renders the current state of the fund: valuation metrics
// first, then the custodied holdings against their target weights.
func SummaryMarkdown(f *basket.Fund) (string, error) {
	var b strings.Builder
	shares := f.Shares()
	// Valuations are quoted in the exchange's reference asset.
	reference := f.Bank().Token(f.Exchange().ReferenceAsset())

	fmt.Fprintf(&b, "# %s (%s)\n\n", shares.Name(), shares.Symbol())
	fmt.Fprintf(&b, "*As of %s*\n\n", Now().Format("2006-01-02 15:04:05"))

	value, err := f.BasketValue()
	if err != nil {
		return "", err
	}
	price, err := f.SharePrice()
	if err != nil {
		return "", err
	}

	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| **Basket Value** | **%s** |\n", Cash(value, reference))
	fmt.Fprintf(&b, "| Share Price | %s |\n", Cash(price, reference))
	fmt.Fprintf(&b, "| Total Supply | %s %s |\n", Units(shares.TotalSupply(), shares), shares.Symbol())
	fmt.Fprintf(&b, "| Withdrawal Fee | %s |\n", f.FeeRate())
	fmt.Fprintf(&b, "| Deposits | %s |\n", onOff(f.DepositsEnabled()))
	fmt.Fprintf(&b, "| Withdrawals | %s |\n", onOff(f.WithdrawalsEnabled()))
	fmt.Fprintln(&b, "")

	if f.Strategy().IsEmpty() {
		fmt.Fprintln(&b, "No strategy configured.")
		return b.String(), nil
	}

	holdings, err := f.BasketHoldings()
	if err != nil {
		return "", err
	}
	observed, err := f.ObservedWeights()
	if err != nil {
		return "", err
	}

	fmt.Fprintln(&b, "## Holdings")
	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "| Asset | Quantity | Target | Observed | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for i, h := range holdings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			h.Asset,
			Units(h.Quantity, f.Bank().Token(h.Asset)),
			h.Weight,
			observed[i],
			Cash(h.Value, reference),
		)
	}
	return b.String(), nil
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
