package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/basket"
	"github.com/google/subcommands"
)

type setFeeCmd struct {
	fee    int
	caller string
}

func (*setFeeCmd) Name() string     { return "set-fee" }
func (*setFeeCmd) Synopsis() string { return "set the withdrawal fee rate" }
func (*setFeeCmd) Usage() string {
	return `bkt set-fee -fee <n> [-caller <account>]

  Sets the withdrawal fee in whole percents, 0 to 100. The fee is taken from
  each payout and credited to the fund owner.
`
}

func (c *setFeeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.fee, "fee", 0, "Fee rate in whole percents.")
	f.StringVar(&c.caller, "caller", "", "Calling account. Defaults to the fund owner.")
}

func (c *setFeeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	if c.caller == "" {
		c.caller = fund.Owner()
	}

	if err := fund.SetFeeRate(c.caller, basket.Percent(c.fee)); err != nil {
		return fail("set-fee failed: %v", err)
	}
	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Withdrawal fee set to %d%%\n", c.fee)
	return subcommands.ExitSuccess
}
