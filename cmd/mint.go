package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type mintCmd struct {
	asset  string
	to     string
	amount string
}

func (*mintCmd) Name() string     { return "mint" }
func (*mintCmd) Synopsis() string { return "issue asset units to an account" }
func (*mintCmd) Usage() string {
	return `bkt mint -asset <id> -to <account> -amount <amount>

  Issues new units of an asset to an account, in major units. Used to fund
  depositor accounts and to seed the exchange's liquidity.
`
}

func (c *mintCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset identifier.")
	f.StringVar(&c.to, "to", "", "Receiving account.")
	f.StringVar(&c.amount, "amount", "", "Amount in major units, e.g. 1000.50.")
}

func (c *mintCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.to == "" || c.amount == "" {
		return fail("missing -asset, -to or -amount")
	}

	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	t := fund.Bank().Token(c.asset)
	if t == nil {
		return fail("unknown asset %q", c.asset)
	}
	amount, err := parseAssetAmount(c.amount, t)
	if err != nil {
		return fail("%v", err)
	}

	t.Mint(c.to, amount)
	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Minted %s %s to %s\n", c.amount, c.asset, c.to)
	return subcommands.ExitSuccess
}
