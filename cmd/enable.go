package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type enableCmd struct {
	deposits    string
	withdrawals string
	caller      string
}

func (*enableCmd) Name() string     { return "enable" }
func (*enableCmd) Synopsis() string { return "enable or disable deposits and withdrawals" }
func (*enableCmd) Usage() string {
	return `bkt enable [-deposits true|false] [-withdrawals true|false] [-caller <account>]

  Toggles the fund's operation gates. Omitted gates are left unchanged.
`
}

func (c *enableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.deposits, "deposits", "", "Enable (true) or disable (false) deposits.")
	f.StringVar(&c.withdrawals, "withdrawals", "", "Enable (true) or disable (false) withdrawals.")
	f.StringVar(&c.caller, "caller", "", "Calling account. Defaults to the fund owner.")
}

func (c *enableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.deposits == "" && c.withdrawals == "" {
		return fail("nothing to change, use -deposits and/or -withdrawals")
	}

	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	if c.caller == "" {
		c.caller = fund.Owner()
	}

	if c.deposits != "" {
		enabled, ok := parseBool(c.deposits)
		if !ok {
			return fail("invalid -deposits value %q", c.deposits)
		}
		if err := fund.SetDepositsEnabled(c.caller, enabled); err != nil {
			return fail("enable failed: %v", err)
		}
	}
	if c.withdrawals != "" {
		enabled, ok := parseBool(c.withdrawals)
		if !ok {
			return fail("invalid -withdrawals value %q", c.withdrawals)
		}
		if err := fund.SetWithdrawalsEnabled(c.caller, enabled); err != nil {
			return fail("enable failed: %v", err)
		}
	}

	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Deposits %t, withdrawals %t\n", fund.DepositsEnabled(), fund.WithdrawalsEnabled())
	return subcommands.ExitSuccess
}

func parseBool(s string) (value, ok bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
