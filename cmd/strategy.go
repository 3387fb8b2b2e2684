package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/basket"
	"github.com/google/subcommands"
)

type strategyCmd struct {
	assets   string
	weights  string
	caller   string
	deadline time.Duration
}

func (*strategyCmd) Name() string     { return "strategy" }
func (*strategyCmd) Synopsis() string { return "show or replace the basket composition" }
func (*strategyCmd) Usage() string {
	return `bkt strategy [-assets <id,id,...> -weights <n,n,...>] [-caller <account>]

  Without flags, shows the current strategy. With -assets and -weights,
  liquidates the current basket and redeploys it under the new composition.
  Weights are whole percents and must sum to 100.
`
}

func (c *strategyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assets, "assets", "", "Comma-separated asset identifiers, e.g. GOLD,OIL.")
	f.StringVar(&c.weights, "weights", "", "Comma-separated weights in whole percents, e.g. 60,40.")
	f.StringVar(&c.caller, "caller", "", "Calling account. Defaults to the fund owner.")
	f.DurationVar(&c.deadline, "deadline", 0, "Abort if not done within this duration. 0 means no deadline.")
}

func (c *strategyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}

	if c.assets == "" && c.weights == "" {
		s := fund.Strategy()
		if s.IsEmpty() {
			fmt.Println("No strategy configured.")
			return subcommands.ExitSuccess
		}
		for i, asset := range s.Assets() {
			fmt.Printf("%s %s\n", asset, s.Weights()[i])
		}
		return subcommands.ExitSuccess
	}

	assets := strings.Split(c.assets, ",")
	var weights []basket.Percent
	for _, w := range strings.Split(c.weights, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(w))
		if err != nil {
			return fail("invalid weight %q: %v", w, err)
		}
		weights = append(weights, basket.Percent(n))
	}
	if c.caller == "" {
		c.caller = fund.Owner()
	}

	before := fund.Journal().Len()
	if err := fund.ChangeStrategy(c.caller, assets, weights, deadline(c.deadline)); err != nil {
		return fail("strategy change failed: %v", err)
	}

	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	if err := AppendRecords(fund, before); err != nil {
		return fail("%v", err)
	}
	fmt.Println("Strategy updated")
	return subcommands.ExitSuccess
}
