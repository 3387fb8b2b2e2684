package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/basket"
	"github.com/google/subcommands"
)

type withdrawCmd struct {
	caller   string
	amount   string
	percent  int
	deadline time.Duration
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "burn shares and pay out reserve currency" }
func (*withdrawCmd) Usage() string {
	return `bkt withdraw -caller <account> (-amount <amount> | -percent <n>) [-deadline <duration>]

  Burns shares, liquidates the matching basket slice, and pays the caller in
  reserve currency, minus the withdrawal fee. -amount targets a reserve value,
  -percent a share of the caller's position.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.caller, "caller", "", "Withdrawing account.")
	f.StringVar(&c.amount, "amount", "", "Target reserve amount in major units.")
	f.IntVar(&c.percent, "percent", 0, "Percentage of the caller's position, 1 to 100.")
	f.DurationVar(&c.deadline, "deadline", 0, "Abort if not done within this duration. 0 means no deadline.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.caller == "" {
		return fail("missing -caller")
	}
	if (c.amount == "") == (c.percent == 0) {
		return fail("exactly one of -amount or -percent is required")
	}

	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}

	before := fund.Journal().Len()
	var paid basket.Amount
	if c.amount != "" {
		reserve := fund.Bank().Token(fund.Reserve())
		amount, err := parseAssetAmount(c.amount, reserve)
		if err != nil {
			return fail("%v", err)
		}
		paid, err = fund.WithdrawByAmount(c.caller, amount, deadline(c.deadline))
		if err != nil {
			return fail("withdraw failed: %v", err)
		}
	} else {
		paid, err = fund.WithdrawByPercentage(c.caller, basket.Percent(c.percent), deadline(c.deadline))
		if err != nil {
			return fail("withdraw failed: %v", err)
		}
	}

	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	if err := AppendRecords(fund, before); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Paid %s base units of %s to %s\n", paid, fund.Reserve(), c.caller)
	return subcommands.ExitSuccess
}
