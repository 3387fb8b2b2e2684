package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/basket"
)

// LogMarkdown renders journal records as a chronological markdown report,
// one section per record.
func LogMarkdown(f *basket.Fund, records []basket.Record) string {
	var b strings.Builder
	shares := f.Shares()
	reserve := f.Bank().Token(f.Reserve())

	fmt.Fprintf(&b, "# %s Journal\n\n", shares.Name())
	if len(records) == 0 {
		fmt.Fprintln(&b, "No records.")
		return b.String()
	}

	for _, rec := range records {
		fmt.Fprintf(&b, "## %s %s\n\n", rec.When().Format("2006-01-02 15:04:05"), rec.What())
		switch r := rec.(type) {
		case basket.DepositRecord:
			fmt.Fprintf(&b, "%s deposited %s, minting %s %s. Supply is now %s %s.\n",
				r.Depositor,
				Cash(r.AmountIn, reserve),
				Units(r.SharesMinted, shares), shares.Symbol(),
				Units(r.NewTotalSupply, shares), shares.Symbol())
		case basket.WithdrawRecord:
			fmt.Fprintf(&b, "%s burned %s %s for %s (fee %s). Supply is now %s %s.\n",
				r.Caller,
				Units(r.SharesBurned, shares), shares.Symbol(),
				Cash(r.AmountOut, reserve),
				Cash(r.Fee, reserve),
				Units(r.NewTotalSupply, shares), shares.Symbol())
		case basket.StrategyChangeRecord:
			fmt.Fprintf(&b, "Strategy changed from %s to %s.\n",
				weightTable(r.OldAssets, r.OldWeights),
				weightTable(r.NewAssets, r.NewWeights))
		case basket.RebalanceRecord:
			fmt.Fprintf(&b, "Rebalanced. Weights observed before: %s.\n",
				weightTable(r.Assets, r.WeightsObserved))
		default:
			fmt.Fprintf(&b, "Record %s.\n", rec.Ref())
		}
		fmt.Fprintf(&b, "\n*ref %s*\n\n", rec.Ref())
	}
	return b.String()
}

// weightTable renders an asset/weight pairing inline, e.g. "GOLD 75%, OIL 25%".
func weightTable(assets []string, weights []basket.Percent) string {
	if len(assets) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(assets))
	for i, a := range assets {
		parts[i] = fmt.Sprintf("%s %s", a, weights[i])
	}
	return strings.Join(parts, ", ")
}
