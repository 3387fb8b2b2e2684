package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type declareAssetCmd struct {
	id       string
	name     string
	symbol   string
	decimals int
	rate     string
}

func (*declareAssetCmd) Name() string     { return "declare-asset" }
func (*declareAssetCmd) Synopsis() string { return "declare a new asset ledger" }
func (*declareAssetCmd) Usage() string {
	return `bkt declare-asset -id <id> [-name <name>] [-symbol <symbol>] [-decimals <n>] [-rate <price>]

  Declares an asset in the fund's bank so it can be priced, custodied, and
  used in a strategy. Declaring an existing asset is a no-op.
`
}

func (c *declareAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset identifier, e.g. GOLD.")
	f.StringVar(&c.name, "name", "", "Display name. Defaults to the identifier.")
	f.StringVar(&c.symbol, "symbol", "", "Symbol. Defaults to the identifier.")
	f.IntVar(&c.decimals, "decimals", 0, "Base-unit decimals.")
	f.StringVar(&c.rate, "rate", "", "Reference price of one base unit, e.g. 2.5.")
}

func (c *declareAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return fail("missing -id")
	}
	if c.name == "" {
		c.name = c.id
	}
	if c.symbol == "" {
		c.symbol = c.id
	}

	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}

	fund.Bank().Declare(c.id, c.name, c.symbol, c.decimals)
	if c.rate != "" {
		rate, err := decimal.NewFromString(c.rate)
		if err != nil {
			return fail("invalid rate %q: %v", c.rate, err)
		}
		x.SetRate(c.id, rate)
	}

	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Declared asset %s\n", c.id)
	return subcommands.ExitSuccess
}
