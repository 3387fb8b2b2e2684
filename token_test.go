package basket

import (
	"errors"
	"testing"
)

func TestToken_TransferSemantics(t *testing.T) {
	tok := NewToken("US Dollar", "USD", 2)
	tok.Mint("alice", A(100))

	if err := tok.Transfer("alice", "bob", A(40)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got := tok.BalanceOf("alice"); !got.Equal(A(60)) {
		t.Errorf("alice = %s, want 60", got)
	}
	if got := tok.BalanceOf("bob"); !got.Equal(A(40)) {
		t.Errorf("bob = %s, want 40", got)
	}
	if got := tok.TotalSupply(); !got.Equal(A(100)) {
		t.Errorf("supply = %s, want 100", got)
	}

	if err := tok.Transfer("alice", "bob", A(61)); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("overdraft err = %v, want ErrInsufficientBalance", err)
	}
	if err := tok.Transfer("alice", "bob", A(-1)); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("negative transfer err = %v, want ErrInsufficientBalance", err)
	}
	// a holder with no entry simply has a zero balance
	if got := tok.BalanceOf("nobody"); !got.IsZero() {
		t.Errorf("nobody = %s, want 0", got)
	}
}

func TestToken_AllowanceSemantics(t *testing.T) {
	tok := NewToken("US Dollar", "USD", 2)
	tok.Mint("alice", A(100))

	if err := tok.TransferFrom("fund", "alice", "fund", A(10)); !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("unapproved err = %v, want ErrInsufficientAllowance", err)
	}

	tok.Approve("alice", "fund", A(30))
	if got := tok.Allowance("alice", "fund"); !got.Equal(A(30)) {
		t.Errorf("allowance = %s, want 30", got)
	}
	if err := tok.TransferFrom("fund", "alice", "fund", A(20)); err != nil {
		t.Fatalf("TransferFrom: %v", err)
	}
	// allowance is consumed, not reset
	if got := tok.Allowance("alice", "fund"); !got.Equal(A(10)) {
		t.Errorf("allowance = %s, want 10", got)
	}
	if err := tok.TransferFrom("fund", "alice", "fund", A(11)); !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("exhausted err = %v, want ErrInsufficientAllowance", err)
	}
}

func TestToken_MintBurn(t *testing.T) {
	tok := NewToken("Basket Shares", "BSK", 18)
	tok.Mint("alice", A(1000))
	tok.Mint("bob", A(500))
	if got := tok.TotalSupply(); !got.Equal(A(1500)) {
		t.Fatalf("supply = %s, want 1500", got)
	}
	if err := tok.Burn("bob", A(600)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("overburn err = %v, want ErrInsufficientBalance", err)
	}
	if err := tok.Burn("bob", A(500)); err != nil {
		t.Fatalf("Burn: %v", err)
	}
	if got := tok.TotalSupply(); !got.Equal(A(1000)) {
		t.Errorf("supply = %s, want 1000", got)
	}
}

func TestToken_CloneIsIndependent(t *testing.T) {
	tok := NewToken("US Dollar", "USD", 2)
	tok.Mint("alice", A(100))
	tok.Approve("alice", "fund", A(50))

	snap := tok.Clone()
	if err := tok.Transfer("alice", "bob", A(100)); err != nil {
		t.Fatal(err)
	}
	tok.Approve("alice", "fund", A(0))

	if got := snap.BalanceOf("alice"); !got.Equal(A(100)) {
		t.Errorf("snapshot alice = %s, want 100", got)
	}
	if got := snap.Allowance("alice", "fund"); !got.Equal(A(50)) {
		t.Errorf("snapshot allowance = %s, want 50", got)
	}

	tok.restoreFrom(snap)
	if got := tok.BalanceOf("alice"); !got.Equal(A(100)) {
		t.Errorf("restored alice = %s, want 100", got)
	}
	if got := tok.BalanceOf("bob"); !got.IsZero() {
		t.Errorf("restored bob = %s, want 0", got)
	}
}
