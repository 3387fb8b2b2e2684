package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/basket"
	"github.com/shopspring/decimal"
)

func newTestFund(t *testing.T) *basket.Fund {
	t.Helper()
	bank := basket.NewBank()
	bank.Declare("USD", "US Dollar", "USD", 2)
	bank.Declare("GOLD", "Gold", "XAU", 0)
	bank.Declare("OIL", "Crude Oil", "OIL", 0)

	x := basket.NewRateExchange(bank, "USD", "exchange")
	x.SetRate("GOLD", decimal.NewFromInt(2))
	x.SetRate("OIL", decimal.NewFromInt(4))
	for _, id := range bank.Assets() {
		bank.Token(id).Mint("exchange", basket.A(decimal.New(1, 15)))
	}

	f, err := basket.NewFund(bank, x, "admin", "USD", "Basket Shares", "BSK")
	if err != nil {
		t.Fatalf("NewFund: %v", err)
	}
	if err := f.ChangeStrategy("admin", []string{"GOLD", "OIL"}, []basket.Percent{60, 40}, time.Time{}); err != nil {
		t.Fatalf("ChangeStrategy: %v", err)
	}
	usd := bank.Token("USD")
	usd.Mint("alice", basket.A(100_000))
	usd.Approve("alice", f.Account(), basket.A(100_000))
	if _, err := f.Deposit("alice", basket.A(100_000), time.Time{}); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	return f
}

func TestSummaryMarkdown(t *testing.T) {
	t.Setenv("BASKET_TESTING_NOW", "2026-03-01 09:00:00")
	f := newTestFund(t)

	got, err := SummaryMarkdown(f)
	if err != nil {
		t.Fatalf("SummaryMarkdown: %v", err)
	}

	for _, want := range []string{
		"# Basket Shares (BSK)",
		"*As of 2026-03-01 09:00:00*",
		"| **Basket Value** | **$1,000.00** |",
		"| Share Price | $10.00 |",
		"| Total Supply | 100 BSK |",
		"| Withdrawal Fee | 0% |",
		"| Deposits | enabled |",
		"| GOLD | 30000 | 60% | 60% | $600.00 |",
		"| OIL | 10000 | 40% | 40% | $400.00 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q in:\n%s", want, got)
		}
	}
}

func TestSummaryMarkdown_NoStrategy(t *testing.T) {
	bank := basket.NewBank()
	bank.Declare("USD", "US Dollar", "USD", 2)
	x := basket.NewRateExchange(bank, "USD", "exchange")
	f, err := basket.NewFund(bank, x, "admin", "USD", "Basket Shares", "BSK")
	if err != nil {
		t.Fatalf("NewFund: %v", err)
	}

	got, err := SummaryMarkdown(f)
	if err != nil {
		t.Fatalf("SummaryMarkdown: %v", err)
	}
	if !strings.Contains(got, "No strategy configured.") {
		t.Errorf("summary missing empty-strategy notice in:\n%s", got)
	}
}

func TestLogMarkdown(t *testing.T) {
	f := newTestFund(t)
	if _, err := f.WithdrawByPercentage("alice", 50, time.Time{}); err != nil {
		t.Fatalf("WithdrawByPercentage: %v", err)
	}

	got := LogMarkdown(f, f.Journal().Records())

	for _, want := range []string{
		"# Basket Shares Journal",
		"Strategy changed from (empty) to GOLD 60%, OIL 40%.",
		"alice deposited $1,000.00, minting 100 BSK. Supply is now 100 BSK.",
		"alice burned 50 BSK for $500.00 (fee $0.00). Supply is now 50 BSK.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("log missing %q in:\n%s", want, got)
		}
	}
}

func TestLogMarkdown_Empty(t *testing.T) {
	f := newTestFund(t)
	got := LogMarkdown(f, nil)
	if !strings.Contains(got, "No records.") {
		t.Errorf("log missing empty notice in:\n%s", got)
	}
}
