package basket

import "fmt"

// Bank is the set of asset ledgers a fund and its exchange operate on,
// indexed by asset identifier and kept in declaration order.
type Bank struct {
	ids    []string
	tokens map[string]*Token
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{tokens: make(map[string]*Token)}
}

// Declare registers a new asset ledger under id and returns it. Declaring an
// already known id returns the existing ledger unchanged.
func (b *Bank) Declare(id, name, symbol string, decimals int) *Token {
	if t, ok := b.tokens[id]; ok {
		return t
	}
	t := NewToken(name, symbol, decimals)
	b.ids = append(b.ids, id)
	b.tokens[id] = t
	return t
}

// Token returns the ledger for id, or nil if the asset is unknown.
func (b *Bank) Token(id string) *Token { return b.tokens[id] }

// token returns the ledger for id or an ErrUnknownAsset failure.
func (b *Bank) token(id string) (*Token, error) {
	t, ok := b.tokens[id]
	if !ok {
		return nil, fmt.Errorf("no ledger for asset %q: %w", id, ErrUnknownAsset)
	}
	return t, nil
}

// Assets returns the declared asset ids in declaration order.
func (b *Bank) Assets() []string {
	ids := make([]string, len(b.ids))
	copy(ids, b.ids)
	return ids
}

// snapshot clones every ledger, keyed by asset id.
func (b *Bank) snapshot() map[string]*Token {
	snap := make(map[string]*Token, len(b.tokens))
	for id, t := range b.tokens {
		snap[id] = t.Clone()
	}
	return snap
}

// restore copies a snapshot back into the live ledgers in place. Assets
// declared after the snapshot keep their (empty at snapshot time) ledgers.
func (b *Bank) restore(snap map[string]*Token) {
	for id, t := range b.tokens {
		if s, ok := snap[id]; ok {
			t.restoreFrom(s)
		}
	}
}
