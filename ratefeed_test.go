package basket

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFetchRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gold":
			fmt.Fprint(w, `{"quote": {"price": 2.5}}`)
		case "/oil":
			fmt.Fprint(w, `{"prices": [4.25, 4.30]}`)
		case "/text":
			fmt.Fprint(w, `{"price": "not a number"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		src     RateSource
		want    decimal.Decimal
		wantErr bool
	}{
		{
			name: "nested value",
			src:  RateSource{Asset: "GOLD", URL: srv.URL + "/gold", Path: "$.quote.price"},
			want: decimal.NewFromFloat(2.5),
		},
		{
			name: "list answer keeps first",
			src:  RateSource{Asset: "OIL", URL: srv.URL + "/oil", Path: "$.prices"},
			want: decimal.NewFromFloat(4.25),
		},
		{
			name:    "not a number",
			src:     RateSource{Asset: "X", URL: srv.URL + "/text", Path: "$.price"},
			wantErr: true,
		},
		{
			name:    "missing endpoint",
			src:     RateSource{Asset: "X", URL: srv.URL + "/nope", Path: "$.price"},
			wantErr: true,
		},
		{
			name:    "bad path",
			src:     RateSource{Asset: "GOLD", URL: srv.URL + "/gold", Path: "$.no.such["},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FetchRate(srv.Client(), tc.src)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("FetchRate = %s, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchRate: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("FetchRate = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestUpdateRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"price": 3}`)
	}))
	defer srv.Close()

	bank := NewBank()
	bank.Declare("USD", "US Dollar", "USD", 2)
	bank.Declare("GOLD", "Gold", "XAU", 0)
	x := NewRateExchange(bank, "USD", "exchange")

	sources := []RateSource{{Asset: "GOLD", URL: srv.URL, Path: "$.price"}}
	if err := UpdateRates(srv.Client(), x, sources); err != nil {
		t.Fatalf("UpdateRates: %v", err)
	}
	rate, ok := x.Rate("GOLD")
	if !ok || !rate.Equal(decimal.NewFromInt(3)) {
		t.Errorf("GOLD rate = %s (%t), want 3", rate, ok)
	}

	// A failing source stops the update and reports the error.
	bad := []RateSource{{Asset: "OIL", URL: srv.URL + "/missing", Path: "$.price"}}
	if err := UpdateRates(srv.Client(), x, bad); err == nil {
		t.Error("UpdateRates with a failing source returned nil error")
	}
}
