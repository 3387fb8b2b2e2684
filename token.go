package basket

import "fmt"

// Token is an in-memory fungible asset ledger with the standard
// balance/allowance/transfer semantics. One Token instance backs each basket
// asset, the reserve currency, and the share token itself.
//
// Token carries no ambient caller identity: operations name the acting
// accounts explicitly, and the surrounding engine is responsible for calling
// them on behalf of the right identity.
type Token struct {
	name     string
	symbol   string
	decimals int

	balances   map[string]Amount
	allowances map[string]map[string]Amount // owner -> spender -> remaining
	supply     Amount
}

// NewToken creates an empty ledger for a fungible asset. decimals is the
// number of fractional digits one whole unit carries (18 for share tokens).
func NewToken(name, symbol string, decimals int) *Token {
	return &Token{
		name:       name,
		symbol:     symbol,
		decimals:   decimals,
		balances:   make(map[string]Amount),
		allowances: make(map[string]map[string]Amount),
	}
}

func (t *Token) Name() string     { return t.name }
func (t *Token) Symbol() string   { return t.symbol }
func (t *Token) Decimals() int    { return t.decimals }

// TotalSupply returns the number of base units currently minted.
func (t *Token) TotalSupply() Amount { return t.supply }

// BalanceOf returns holder's balance. A holder with no entry has a zero
// balance; the two are equivalent.
func (t *Token) BalanceOf(holder string) Amount { return t.balances[holder] }

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to string, amount Amount) error {
	if amount.IsNegative() {
		return fmt.Errorf("transfer of negative amount %s: %w", amount, ErrInsufficientBalance)
	}
	if t.balances[from].LessThan(amount) {
		return fmt.Errorf("%s balance %s of %q is less than %s: %w", t.symbol, t.balances[from], from, amount, ErrInsufficientBalance)
	}
	t.balances[from] = t.balances[from].Sub(amount)
	t.balances[to] = t.balances[to].Add(amount)
	return nil
}

// Approve authorizes spender to move up to amount from owner's balance,
// replacing any previous authorization.
func (t *Token) Approve(owner, spender string, amount Amount) {
	m, ok := t.allowances[owner]
	if !ok {
		m = make(map[string]Amount)
		t.allowances[owner] = m
	}
	m[spender] = amount
}

// Allowance returns what spender may still move from owner's balance.
func (t *Token) Allowance(owner, spender string) Amount {
	return t.allowances[owner][spender]
}

// TransferFrom moves amount from 'from' to 'to' on behalf of spender,
// consuming spender's allowance.
func (t *Token) TransferFrom(spender, from, to string, amount Amount) error {
	if t.Allowance(from, spender).LessThan(amount) {
		return fmt.Errorf("%s allowance of %q for %q is less than %s: %w", t.symbol, from, spender, amount, ErrInsufficientAllowance)
	}
	if err := t.Transfer(from, to, amount); err != nil {
		return err
	}
	t.allowances[from][spender] = t.allowances[from][spender].Sub(amount)
	return nil
}

// Mint creates amount new base units on to's balance.
func (t *Token) Mint(to string, amount Amount) {
	t.balances[to] = t.balances[to].Add(amount)
	t.supply = t.supply.Add(amount)
}

// Burn destroys amount base units from from's balance.
func (t *Token) Burn(from string, amount Amount) error {
	if t.balances[from].LessThan(amount) {
		return fmt.Errorf("%s balance %s of %q is less than %s: %w", t.symbol, t.balances[from], from, amount, ErrInsufficientBalance)
	}
	t.balances[from] = t.balances[from].Sub(amount)
	t.supply = t.supply.Sub(amount)
	return nil
}

// Clone returns a deep copy of the ledger, used by the engine to snapshot
// state before a mutating request.
func (t *Token) Clone() *Token {
	c := NewToken(t.name, t.symbol, t.decimals)
	c.supply = t.supply
	for h, b := range t.balances {
		c.balances[h] = b
	}
	for o, m := range t.allowances {
		cm := make(map[string]Amount, len(m))
		for s, a := range m {
			cm[s] = a
		}
		c.allowances[o] = cm
	}
	return c
}

// restoreFrom copies the state of snap back into t in place, so references
// held by other components stay valid across a rollback.
func (t *Token) restoreFrom(snap *Token) {
	t.name, t.symbol, t.decimals = snap.name, snap.symbol, snap.decimals
	t.supply = snap.supply
	t.balances = make(map[string]Amount, len(snap.balances))
	for h, b := range snap.balances {
		t.balances[h] = b
	}
	t.allowances = make(map[string]map[string]Amount, len(snap.allowances))
	for o, m := range snap.allowances {
		cm := make(map[string]Amount, len(m))
		for s, a := range m {
			cm[s] = a
		}
		t.allowances[o] = cm
	}
}
