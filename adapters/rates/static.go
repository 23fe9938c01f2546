package rates

import (
	"context"
	"time"

	"landed-cost/core/types"
)

// StaticSource serves a fixed rate table, typically from configuration
type StaticSource struct {
	rates Rates
}

// NewStaticSource creates a static source. Codes are normalized and
// non-positive rates are dropped.
func NewStaticSource(rates map[string]float64) *StaticSource {
	normalized := make(Rates, len(rates))
	for code, rate := range rates {
		if rate > 0 {
			normalized[types.Currency(code).Normalize()] = rate
		}
	}
	return &StaticSource{rates: normalized}
}

// Name returns the source name
func (s *StaticSource) Name() string {
	return "static"
}

// Fetch returns a copy of the configured rates
func (s *StaticSource) Fetch(ctx context.Context) (*FetchResult, error) {
	out := make(Rates, len(s.rates))
	for c, r := range s.rates {
		out[c] = r
	}
	return &FetchResult{
		Source:    s.Name(),
		Rates:     out,
		FetchedAt: time.Now(),
	}, nil
}
