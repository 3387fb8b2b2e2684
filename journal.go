package basket

import (
	"time"

	"github.com/google/uuid"
)

// RecordType is a typed string identifying the kind of an audit record.
type RecordType string

// Record types emitted by the engine.
const (
	RecordDeposit        RecordType = "deposit"
	RecordWithdraw       RecordType = "withdraw"
	RecordStrategyChange RecordType = "strategy-change"
	RecordRebalance      RecordType = "rebalance"
)

// Record is a single, immutable audit fact appended to the journal by a
// successful request.
type Record interface {
	What() RecordType // What returns the kind of record.
	When() time.Time  // When returns the moment the record was emitted.
	Ref() string      // Ref returns the record's unique identifier.
}

// baseRecord carries the fields every audit record shares.
type baseRecord struct {
	ID   string     `json:"id"`
	Type RecordType `json:"type"`
	Time time.Time  `json:"time"`
}

func (r baseRecord) What() RecordType { return r.Type }
func (r baseRecord) When() time.Time  { return r.Time }
func (r baseRecord) Ref() string      { return r.ID }

// MarshalJSON implements the json.Marshaler interface for baseRecord.
func (r baseRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("type", r.Type)
	w.Append("time", r.Time)
	return w.MarshalJSON()
}

// DepositRecord reports a successful deposit.
type DepositRecord struct {
	baseRecord
	Depositor      string `json:"depositor"`
	AmountIn       Amount `json:"amountIn"`
	SharesMinted   Amount `json:"sharesMinted"`
	NewTotalSupply Amount `json:"newTotalSupply"`
}

// MarshalJSON implements the json.Marshaler interface for DepositRecord.
func (r DepositRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRecord)
	w.Append("depositor", r.Depositor)
	w.Append("amountIn", r.AmountIn)
	w.Append("sharesMinted", r.SharesMinted)
	w.Append("newTotalSupply", r.NewTotalSupply)
	return w.MarshalJSON()
}

// WithdrawRecord reports a successful withdrawal. AmountOut is the total
// reserve currency the basket slice converted to; the caller received
// AmountOut minus Fee.
type WithdrawRecord struct {
	baseRecord
	Caller         string `json:"caller"`
	AmountOut      Amount `json:"amountOut"`
	Fee            Amount `json:"fee"`
	SharesBurned   Amount `json:"sharesBurned"`
	NewTotalSupply Amount `json:"newTotalSupply"`
}

// MarshalJSON implements the json.Marshaler interface for WithdrawRecord.
func (r WithdrawRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRecord)
	w.Append("caller", r.Caller)
	w.Append("amountOut", r.AmountOut)
	w.Append("fee", r.Fee)
	w.Append("sharesBurned", r.SharesBurned)
	w.Append("newTotalSupply", r.NewTotalSupply)
	return w.MarshalJSON()
}

// StrategyChangeRecord reports a basket composition replacement, old table
// against new.
type StrategyChangeRecord struct {
	baseRecord
	OldAssets  []string  `json:"oldAssets"`
	OldWeights []Percent `json:"oldWeights"`
	NewAssets  []string  `json:"newAssets"`
	NewWeights []Percent `json:"newWeights"`
}

// MarshalJSON implements the json.Marshaler interface for StrategyChangeRecord.
func (r StrategyChangeRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRecord)
	w.Append("oldAssets", r.OldAssets)
	w.Append("oldWeights", r.OldWeights)
	w.Append("newAssets", r.NewAssets)
	w.Append("newWeights", r.NewWeights)
	return w.MarshalJSON()
}

// RebalanceRecord reports a rebalance, with the weight distribution observed
// right before holdings were brought back to target.
type RebalanceRecord struct {
	baseRecord
	Assets          []string  `json:"assets"`
	WeightsObserved []Percent `json:"weightsObserved"`
}

// MarshalJSON implements the json.Marshaler interface for RebalanceRecord.
func (r RebalanceRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.baseRecord)
	w.Append("assets", r.Assets)
	w.Append("weightsObserved", r.WeightsObserved)
	return w.MarshalJSON()
}

// Journal holds the append-only list of audit records in emission order.
type Journal struct {
	records []Record
}

// NewJournal creates an empty journal.
func NewJournal() *Journal { return &Journal{} }

// Records returns a copy of all records in emission order.
func (j *Journal) Records() []Record {
	return append([]Record(nil), j.records...)
}

// Len returns the number of records.
func (j *Journal) Len() int { return len(j.records) }

// Since returns a copy of the records appended after position n.
func (j *Journal) Since(n int) []Record {
	if n < 0 || n > len(j.records) {
		return nil
	}
	return append([]Record(nil), j.records[n:]...)
}

func (j *Journal) append(r Record) { j.records = append(j.records, r) }

// truncate drops records back to length n when a request rolls back.
func (j *Journal) truncate(n int) {
	if n >= 0 && n <= len(j.records) {
		j.records = j.records[:n]
	}
}

// stamp builds the shared part of a new record.
func stamp(kind RecordType, at time.Time) baseRecord {
	return baseRecord{ID: uuid.NewString(), Type: kind, Time: at}
}
