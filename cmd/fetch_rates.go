package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket"
	"github.com/google/subcommands"
)

type fetchRatesCmd struct {
	sourcesFile string
}

func (*fetchRatesCmd) Name() string     { return "fetch-rates" }
func (*fetchRatesCmd) Synopsis() string { return "update reference prices from HTTP sources" }
func (*fetchRatesCmd) Usage() string {
	return `bkt fetch-rates -sources <file>

  Reads a JSON list of rate sources ({"asset", "url", "path"}) and updates the
  exchange's reference prices from them. Responses are cached on disk for the
  rest of the day.
`
}

func (c *fetchRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sourcesFile, "sources", "rates.json", "JSON file listing the rate sources.")
}

func (c *fetchRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, err := os.ReadFile(c.sourcesFile)
	if err != nil {
		return fail("could not read sources file: %v", err)
	}
	var sources []basket.RateSource
	if err := json.Unmarshal(data, &sources); err != nil {
		return fail("invalid sources file %q: %v", c.sourcesFile, err)
	}

	fund, x, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}

	if err := basket.UpdateRates(basket.DailyClient(), x, sources); err != nil {
		return fail("%v", err)
	}
	if err := SaveFund(fund, x); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Updated %d rates\n", len(sources))
	return subcommands.ExitSuccess
}
