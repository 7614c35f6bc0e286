// Package prices supplies current market prices for portfolio valuation.
// A symbol absent from a result map means "no quote available"; consumers
// fall back to the position's cost basis, never treat it as an error.
package prices

import (
	"context"

	"github.com/shopspring/decimal"
)

// Source returns current USD prices keyed by normalized (uppercase) symbol.
type Source interface {
	Fetch(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

// Static is a fixed map of quotes. Used in tests and offline mode.
type Static map[string]decimal.Decimal

func (s Static) Fetch(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		if p, ok := s[sym]; ok {
			out[sym] = p
		}
	}
	return out, nil
}
