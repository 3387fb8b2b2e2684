// Package cmd implements the CLI application to manage a basket fund.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/basket"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "fund")
	c.Register(&declareAssetCmd{}, "fund")
	c.Register(&mintCmd{}, "fund")
	c.Register(&rateCmd{}, "fund")
	c.Register(&fetchRatesCmd{}, "fund")

	c.Register(&depositCmd{}, "operations")
	c.Register(&withdrawCmd{}, "operations")

	c.Register(&strategyCmd{}, "admin")
	c.Register(&rebalanceCmd{}, "admin")
	c.Register(&setFeeCmd{}, "admin")
	c.Register(&enableCmd{}, "admin")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&logCmd{}, "reports")
	c.Register(&priceCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var fundFile = flag.String("fund-file", "fund.json", "Path to the fund state file (JSON format)")
var journalFile = flag.String("journal-file", "journal.jsonl", "Path to the audit journal file (JSONL format)")
var storeFile = flag.String("store", "", "Optional path to a SQLite mirror of the audit journal")

// DecodeFund loads the fund and its exchange from the app fund file.
func DecodeFund() (*basket.Fund, *basket.RateExchange, error) {
	f, err := os.Open(*fundFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("fund file %q does not exist, run 'init' first", *fundFile)
		}
		return nil, nil, err
	}
	defer f.Close()
	return basket.DecodeFund(f)
}

// SaveFund writes the fund and its exchange back to the app fund file.
func SaveFund(fund *basket.Fund, x *basket.RateExchange) error {
	f, err := os.Create(*fundFile)
	if err != nil {
		return fmt.Errorf("could not write fund file %q: %w", *fundFile, err)
	}
	defer f.Close()
	return basket.EncodeFund(f, fund, x)
}

// AppendRecords appends the journal records emitted after position `since` to
// the journal file, and mirrors them to the SQLite store when one is
// configured.
func AppendRecords(fund *basket.Fund, since int) error {
	records := fund.Journal().Since(since)
	if len(records) == 0 {
		return nil
	}

	f, err := os.OpenFile(*journalFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open journal file %q: %w", *journalFile, err)
	}
	defer f.Close()
	for _, r := range records {
		if err := basket.EncodeRecord(f, r); err != nil {
			return err
		}
	}

	if *storeFile == "" {
		return nil
	}
	store, err := basket.OpenStore(*storeFile)
	if err != nil {
		return fmt.Errorf("could not open store %q: %w", *storeFile, err)
	}
	defer store.Close()
	for _, r := range records {
		if err := store.Append(r); err != nil {
			return err
		}
	}
	return nil
}

// parseAssetAmount parses a major-unit decimal string into base units of the
// given token. "10.50" with a 2-decimals token parses to 1050 base units.
func parseAssetAmount(s string, t *basket.Token) (basket.Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return basket.Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	base := d.Shift(int32(t.Decimals()))
	if !base.Equal(base.Truncate(0)) {
		return basket.Amount{}, fmt.Errorf("amount %q has more than %d decimals", s, t.Decimals())
	}
	return basket.A(base), nil
}

func printMarkdown(md string) {
	fmt.Println(md)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
