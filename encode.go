package basket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeRecord appends a single audit record to a JSONL stream.
func EncodeRecord(w io.Writer, r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("could not encode %s record: %w", r.What(), err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// DecodeRecords decodes audit records from a stream of JSONL data, one
// record per line, in emission order.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		rec, err := decodeRecord(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeRecord(line []byte) (Record, error) {
	var identifier struct {
		Type RecordType `json:"type"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify record in line %q: %w", string(line), err)
	}
	var rec Record
	var err error
	switch identifier.Type {
	case RecordDeposit:
		var r DepositRecord
		err = json.Unmarshal(line, &r)
		rec = r
	case RecordWithdraw:
		var r WithdrawRecord
		err = json.Unmarshal(line, &r)
		rec = r
	case RecordStrategyChange:
		var r StrategyChangeRecord
		err = json.Unmarshal(line, &r)
		rec = r
	case RecordRebalance:
		var r RebalanceRecord
		err = json.Unmarshal(line, &r)
		rec = r
	default:
		return nil, fmt.Errorf("unknown record type %q in line %q", identifier.Type, string(line))
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode %s record: %w", identifier.Type, err)
	}
	return rec, nil
}

// assetFile is the serialized form of one asset ledger and its reference
// price. Supply is not stored: it is always the sum of the balances.
type assetFile struct {
	ID         string                       `json:"id"`
	Name       string                       `json:"name"`
	Symbol     string                       `json:"symbol"`
	Decimals   int                          `json:"decimals"`
	Rate       decimal.Decimal              `json:"rate"`
	Balances   map[string]Amount            `json:"balances,omitempty"`
	Allowances map[string]map[string]Amount `json:"allowances,omitempty"`
}

// strategyFile is the serialized basket composition.
type strategyFile struct {
	Assets  []string  `json:"assets"`
	Weights []Percent `json:"weights"`
}

// fundFile is the serialized form of a fund together with its market
// environment, enough to rebuild both exactly.
type fundFile struct {
	Owner              string            `json:"owner"`
	Reserve            string            `json:"reserve"`
	ShareName          string            `json:"shareName"`
	ShareSymbol        string            `json:"shareSymbol"`
	Fee                Percent           `json:"fee"`
	DepositsEnabled    bool              `json:"depositsEnabled"`
	WithdrawalsEnabled bool              `json:"withdrawalsEnabled"`
	Reference          string            `json:"reference"`
	ExchangeAccount    string            `json:"exchangeAccount"`
	SpreadBps          int64             `json:"spreadBps,omitempty"`
	Strategy           *strategyFile     `json:"strategy,omitempty"`
	Assets             []assetFile       `json:"assets"`
	ShareBalances      map[string]Amount `json:"shareBalances,omitempty"`
}

// EncodeFund writes the fund and its rate exchange as an indented JSON
// document.
func EncodeFund(w io.Writer, f *Fund, x *RateExchange) error {
	file := fundFile{
		Owner:              f.owner,
		Reserve:            f.reserve,
		ShareName:          f.shares.Name(),
		ShareSymbol:        f.shares.Symbol(),
		Fee:                f.fee,
		DepositsEnabled:    f.deposits,
		WithdrawalsEnabled: f.withdrawals,
		Reference:          x.ref,
		ExchangeAccount:    x.account,
		SpreadBps:          x.spreadBps,
		ShareBalances:      copyBalances(f.shares.balances),
	}
	if !f.strategy.IsEmpty() {
		file.Strategy = &strategyFile{Assets: f.strategy.Assets(), Weights: f.strategy.Weights()}
	}
	for _, id := range f.bank.Assets() {
		t := f.bank.Token(id)
		rate, _ := x.Rate(id)
		file.Assets = append(file.Assets, assetFile{
			ID:         id,
			Name:       t.name,
			Symbol:     t.symbol,
			Decimals:   t.decimals,
			Rate:       rate,
			Balances:   copyBalances(t.balances),
			Allowances: copyAllowances(t.allowances),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("could not encode fund: %w", err)
	}
	return nil
}

// DecodeFund reads a fund document and rebuilds the fund, its bank, and its
// rate exchange.
func DecodeFund(r io.Reader) (*Fund, *RateExchange, error) {
	var file fundFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("could not decode fund: %w", err)
	}

	bank := NewBank()
	x := NewRateExchange(bank, file.Reference, file.ExchangeAccount)
	x.SetSpread(file.SpreadBps)
	for _, a := range file.Assets {
		t := bank.Declare(a.ID, a.Name, a.Symbol, a.Decimals)
		if a.ID != file.Reference && !a.Rate.IsZero() {
			x.SetRate(a.ID, a.Rate)
		}
		restoreBalances(t, a.Balances)
		for owner, m := range a.Allowances {
			for spender, amount := range m {
				t.Approve(owner, spender, amount)
			}
		}
	}

	f, err := NewFund(bank, x, file.Owner, file.Reserve, file.ShareName, file.ShareSymbol)
	if err != nil {
		return nil, nil, err
	}
	f.fee = file.Fee
	f.deposits = file.DepositsEnabled
	f.withdrawals = file.WithdrawalsEnabled
	restoreBalances(f.shares, file.ShareBalances)
	if file.Strategy != nil {
		s, err := NewStrategy(file.Strategy.Assets, file.Strategy.Weights)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid strategy in fund file: %w", err)
		}
		f.strategy = s
	}
	return f, x, nil
}

func copyBalances(balances map[string]Amount) map[string]Amount {
	out := make(map[string]Amount, len(balances))
	for holder, b := range balances {
		if b.IsZero() {
			continue // a zero balance is equivalent to absence
		}
		out[holder] = b
	}
	return out
}

func copyAllowances(allowances map[string]map[string]Amount) map[string]map[string]Amount {
	out := make(map[string]map[string]Amount)
	for owner, m := range allowances {
		for spender, a := range m {
			if a.IsZero() {
				continue
			}
			if out[owner] == nil {
				out[owner] = make(map[string]Amount)
			}
			out[owner][spender] = a
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func restoreBalances(t *Token, balances map[string]Amount) {
	holders := maps.Keys(balances)
	slices.Sort(holders)
	for _, holder := range holders {
		t.Mint(holder, balances[holder])
	}
}
