package basket

import (
	"testing"
	"time"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keys keep insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("depositor", "alice")
		w.Append("amountIn", 100000)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"depositor":"alice","amountIn":100000}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embedded fields merge in place", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 1)
		w.Embed([]byte(`{"c":3,"d":4}`))
		w.Append("b", 2)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":1,"c":3,"d":4,"b":2}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional skips zero values", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("fee", 0) // Append writes zero values
		w.Optional("spread", 0)
		w.Optional("note", "")
		w.Optional("caller", "bob")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"fee":0,"caller":"bob"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

// Record headers embed through EmbedFrom; the base fields must come first so
// every journal line starts with id and type.
func TestJsonObjectWriter_EmbedFromBase(t *testing.T) {
	base := baseRecord{ID: "r-1", Type: RecordDeposit, Time: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	var w jsonObjectWriter
	w.EmbedFrom(base)
	w.Append("depositor", "alice")
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"id":"r-1","type":"deposit","time":"2026-01-02T03:04:05Z","depositor":"alice"}`
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
