package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
)

type depositCmd struct {
	caller   string
	amount   string
	deadline time.Duration
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit reserve currency and mint shares" }
func (*depositCmd) Usage() string {
	return `bkt deposit -caller <account> -amount <amount> [-deadline <duration>]

  Pulls reserve currency from the caller, converts it into the basket, and
  mints shares so that existing holders are not diluted.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.caller, "caller", "", "Depositing account.")
	f.StringVar(&c.amount, "amount", "", "Reserve amount in major units.")
	f.DurationVar(&c.deadline, "deadline", 0, "Abort if not done within this duration. 0 means no deadline.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.caller == "" || c.amount == "" {
		return fail("missing -caller or -amount")
	}

	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	reserve := fund.Bank().Token(fund.Reserve())
	amount, err := parseAssetAmount(c.amount, reserve)
	if err != nil {
		return fail("%v", err)
	}

	// The CLI is the caller's agent: authorize the pull it is about to request.
	reserve.Approve(c.caller, fund.Account(), amount)

	before := fund.Journal().Len()
	minted, err := fund.Deposit(c.caller, amount, deadline(c.deadline))
	if err != nil {
		return fail("deposit failed: %v", err)
	}

	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	if err := AppendRecords(fund, before); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Minted %s shares to %s\n", minted, c.caller)
	return subcommands.ExitSuccess
}

// deadline turns a relative duration into an absolute deadline, keeping the
// zero value as "no deadline".
func deadline(d time.Duration) time.Time {
	if d == 0 {
		return time.Time{}
	}
	return time.Now().Add(d)
}
