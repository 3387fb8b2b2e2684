package basket

import "fmt"

// DefaultMaxAssets caps how many assets a strategy may hold. The cap comes
// from the widest asset count a single-byte index can address; funds may
// lower or raise it at creation.
const DefaultMaxAssets = 255

// Strategy is the basket composition: an ordered list of unique asset
// identifiers and their target weight in whole percents. A non-empty
// strategy's weights always sum to 100.
//
// Strategy values are immutable; the fund replaces the whole table
// atomically on a strategy change.
type Strategy struct {
	assets  []string
	weights map[string]Percent
}

// NewStrategy validates and builds a strategy from parallel asset and weight
// tables. It requires at least one asset, tables of equal length, unique
// non-empty asset ids, each weight in [0, 100], and weights summing to 100.
func NewStrategy(assets []string, weights []Percent) (Strategy, error) {
	if len(assets) == 0 {
		return Strategy{}, fmt.Errorf("at least one asset is required: %w", ErrStrategyMismatch)
	}
	if len(assets) != len(weights) {
		return Strategy{}, fmt.Errorf("%d assets but %d weights: %w", len(assets), len(weights), ErrStrategyMismatch)
	}
	table := make(map[string]Percent, len(assets))
	var sum Percent
	for i, id := range assets {
		if id == "" {
			return Strategy{}, fmt.Errorf("empty asset id at index %d: %w", i, ErrStrategyMismatch)
		}
		if _, dup := table[id]; dup {
			return Strategy{}, fmt.Errorf("duplicate asset %q: %w", id, ErrStrategyMismatch)
		}
		if !weights[i].InRange() {
			return Strategy{}, fmt.Errorf("weight %s for %q out of range: %w", weights[i], id, ErrStrategyMismatch)
		}
		table[id] = weights[i]
		sum += weights[i]
	}
	if sum != 100 {
		return Strategy{}, fmt.Errorf("weights sum to %s instead of 100: %w", sum, ErrStrategyMismatch)
	}
	return Strategy{assets: append([]string(nil), assets...), weights: table}, nil
}

// IsEmpty reports whether the strategy holds no asset.
func (s Strategy) IsEmpty() bool { return len(s.assets) == 0 }

// Len returns the number of assets in the basket.
func (s Strategy) Len() int { return len(s.assets) }

// Assets returns the asset ids in configured order.
func (s Strategy) Assets() []string {
	return append([]string(nil), s.assets...)
}

// Weights returns the weights in the same order as Assets.
func (s Strategy) Weights() []Percent {
	ws := make([]Percent, len(s.assets))
	for i, id := range s.assets {
		ws[i] = s.weights[id]
	}
	return ws
}

// Weight returns the target weight for asset, zero if absent.
func (s Strategy) Weight(asset string) Percent { return s.weights[asset] }

// Contains reports whether asset is part of the basket.
func (s Strategy) Contains(asset string) bool {
	_, ok := s.weights[asset]
	return ok
}
