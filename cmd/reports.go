package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket"
	"github.com/etnz/basket/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string           { return "summary" }
func (*summaryCmd) Synopsis() string       { return "display the fund's valuation and holdings" }
func (*summaryCmd) SetFlags(*flag.FlagSet) {}
func (*summaryCmd) Usage() string {
	return `bkt summary

  Displays the fund's valuation, share price, supply, and holdings against
  their target weights.
`
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, _, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	md, err := renderer.SummaryMarkdown(fund)
	if err != nil {
		return fail("could not render summary: %v", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string           { return "holdings" }
func (*holdingsCmd) Synopsis() string       { return "list custodied quantities per asset" }
func (*holdingsCmd) SetFlags(*flag.FlagSet) {}
func (*holdingsCmd) Usage() string {
	return `bkt holdings

  Lists the custodied quantity of each basket asset, one per line.
`
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, _, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	holdings, err := fund.BasketHoldings()
	if err != nil {
		return fail("could not value holdings: %v", err)
	}
	for _, h := range holdings {
		fmt.Printf("%s %s (%s)\n", h.Asset, renderer.Units(h.Quantity, fund.Bank().Token(h.Asset)), h.Weight)
	}
	return subcommands.ExitSuccess
}

type logCmd struct {
	head int
	tail int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the audit journal" }
func (*logCmd) Usage() string {
	return `bkt log [-head <n>] [-tail <n>]

  Displays the audit journal as a markdown report, with options for limiting
  the output.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first N records.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N records.")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	fund, _, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	records, err := readJournal()
	if err != nil {
		return fail("%v", err)
	}

	if c.head > 0 && len(records) > c.head {
		records = records[:c.head]
	}
	if c.tail > 0 && len(records) > c.tail {
		records = records[len(records)-c.tail:]
	}

	printMarkdown(renderer.LogMarkdown(fund, records))
	return subcommands.ExitSuccess
}

// readJournal loads the audit records, preferring the SQLite store when one
// is configured.
func readJournal() ([]basket.Record, error) {
	if *storeFile != "" {
		store, err := basket.OpenStore(*storeFile)
		if err != nil {
			return nil, fmt.Errorf("could not open store %q: %w", *storeFile, err)
		}
		defer store.Close()
		return store.Records()
	}

	f, err := os.Open(*journalFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open journal file %q: %w", *journalFile, err)
	}
	defer f.Close()
	return basket.DecodeRecords(f)
}

type priceCmd struct{}

func (*priceCmd) Name() string           { return "price" }
func (*priceCmd) Synopsis() string       { return "print the share price and basket value" }
func (*priceCmd) SetFlags(*flag.FlagSet) {}
func (*priceCmd) Usage() string {
	return `bkt price

  Prints the basket value and the price of one share, in base units of the
  reference asset. Scriptable output, one value per line.
`
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, _, err := DecodeFund()
	if err != nil {
		return fail("%v", err)
	}
	value, err := fund.BasketValue()
	if err != nil {
		return fail("could not value basket: %v", err)
	}
	price, err := fund.SharePrice()
	if err != nil {
		return fail("could not price shares: %v", err)
	}
	fmt.Printf("value %s\nprice %s\n", value, price)
	return subcommands.ExitSuccess
}
