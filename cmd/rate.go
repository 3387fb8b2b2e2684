package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type rateCmd struct {
	asset string
	rate  string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "set or show an asset's reference price" }
func (*rateCmd) Usage() string {
	return `bkt rate -asset <id> [-set <price>]

  Shows the asset's reference price, or sets it when -set is given.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset identifier.")
	f.StringVar(&c.rate, "set", "", "New reference price of one base unit.")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		return fail("missing -asset")
	}

	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}

	if c.rate == "" {
		rate, ok := x.Rate(c.asset)
		if !ok {
			return fail("no rate for asset %q", c.asset)
		}
		fmt.Printf("%s = %s %s\n", c.asset, rate, x.ReferenceAsset())
		return subcommands.ExitSuccess
	}

	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return fail("invalid rate %q: %v", c.rate, err)
	}
	x.SetRate(c.asset, rate)
	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Set %s = %s %s\n", c.asset, rate, x.ReferenceAsset())
	return subcommands.ExitSuccess
}
