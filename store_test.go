package basket

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStore_AppendAndQuery(t *testing.T) {
	f, _ := newTestFund(t)
	setStrategy(t, f, []string{"GOLD", "OIL"}, []Percent{60, 40})
	fundCaller(t, f, "alice", A(100_000))
	if _, err := f.Deposit("alice", A(100_000), time.Time{}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.WithdrawByPercentage("alice", 100, time.Time{}); err != nil {
		t.Fatal(err)
	}

	store, err := OpenStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	want := f.Journal().Records()
	for _, r := range want {
		if err := store.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("store holds %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Ref() != want[i].Ref() || got[i].What() != want[i].What() {
			t.Errorf("record %d = %s %s, want %s %s", i, got[i].What(), got[i].Ref(), want[i].What(), want[i].Ref())
		}
	}

	deposits, err := store.RecordsByType(RecordDeposit)
	if err != nil {
		t.Fatalf("RecordsByType: %v", err)
	}
	if len(deposits) != 1 {
		t.Fatalf("store holds %d deposit records, want 1", len(deposits))
	}
	dep, ok := deposits[0].(DepositRecord)
	if !ok {
		t.Fatalf("deposit record is %T", deposits[0])
	}
	mustEqual(t, "stored amountIn", dep.AmountIn, A(100_000))

	// records are immutable: appending the same id twice fails
	if err := store.Append(want[0]); err == nil {
		t.Error("duplicate append should fail")
	}
}
