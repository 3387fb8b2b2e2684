package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket"
	"github.com/google/subcommands"
)

type initCmd struct {
	owner           string
	reserve         string
	reserveName     string
	reserveDecimals int
	name            string
	symbol          string
	exchangeAccount string
	spreadBps       int64
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new fund file" }
func (*initCmd) Usage() string {
	return `bkt init -owner <account> -reserve <id> -name <name> -symbol <symbol>

  Creates a new fund file with its reserve asset declared, an empty strategy,
  and no shares issued. Fails if the fund file already exists.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "admin", "Account that administers the fund.")
	f.StringVar(&c.reserve, "reserve", "USD", "Asset identifier of the reserve currency.")
	f.StringVar(&c.reserveName, "reserve-name", "US Dollar", "Display name of the reserve currency.")
	f.IntVar(&c.reserveDecimals, "reserve-decimals", 2, "Base-unit decimals of the reserve currency.")
	f.StringVar(&c.name, "name", "Basket Shares", "Display name of the share token.")
	f.StringVar(&c.symbol, "symbol", "BSK", "Symbol of the share token.")
	f.StringVar(&c.exchangeAccount, "exchange-account", "exchange", "Account holding the exchange's liquidity.")
	f.Int64Var(&c.spreadBps, "spread", 0, "Exchange spread in basis points.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*fundFile); err == nil {
		return fail("fund file %q already exists", *fundFile)
	}

	bank := basket.NewBank()
	bank.Declare(c.reserve, c.reserveName, c.reserve, c.reserveDecimals)
	x := basket.NewRateExchange(bank, c.reserve, c.exchangeAccount)
	x.SetSpread(c.spreadBps)

	fund, err := basket.NewFund(bank, x, c.owner, c.reserve, c.name, c.symbol)
	if err != nil {
		return fail("could not create fund: %v", err)
	}

	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Created fund %s (%s) in %s\n", c.name, c.symbol, *fundFile)
	return subcommands.ExitSuccess
}
