package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
)

type rebalanceCmd struct {
	caller   string
	deadline time.Duration
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "bring holdings back to target weights" }
func (*rebalanceCmd) Usage() string {
	return `bkt rebalance [-caller <account>]

  Liquidates the basket and redeploys it at the current strategy's target
  weights, correcting drift caused by price moves.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.caller, "caller", "", "Calling account. Defaults to the fund owner.")
	f.DurationVar(&c.deadline, "deadline", 0, "Abort if not done within this duration. 0 means no deadline.")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	if c.caller == "" {
		c.caller = fund.Owner()
	}

	before := fund.Journal().Len()
	if err := fund.Rebalance(c.caller, deadline(c.deadline)); err != nil {
		return fail("rebalance failed: %v", err)
	}

	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	if err := AppendRecords(fund, before); err != nil {
		return fail("%v", err)
	}
	fmt.Println("Rebalanced")
	return subcommands.ExitSuccess
}
