// Package rates provides exchange-rate acquisition adapters.
// Every source yields KZT per unit of foreign currency; the engine only ever
// sees the resulting number.
package rates

import (
	"context"
	"sort"
	"sync"
	"time"

	"landed-cost/core/pricing"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// Source is the unified exchange-rate adapter interface
type Source interface {
	// Name identifies the source
	Name() string

	// Fetch returns the current rates
	Fetch(ctx context.Context) (*FetchResult, error)
}

// Rates maps a currency to KZT per unit
type Rates map[types.Currency]float64

// FetchResult contains fetched rates
type FetchResult struct {
	Source    string    `json:"source"`
	Rates     Rates     `json:"rates"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Lookup returns the rate for currency. KZT always converts at 1.
func (r *FetchResult) Lookup(currency types.Currency) (float64, error) {
	currency = currency.Normalize()
	if currency.IsLocal() {
		return 1, nil
	}
	if r != nil {
		if rate, ok := r.Rates[currency]; ok && rate > 0 {
			return rate, nil
		}
	}
	return 0, errors.RateUnavailable(currency.String())
}

// Currencies returns the quoted currencies in sorted order
func (r *FetchResult) Currencies() []types.Currency {
	out := make([]types.Currency, 0, len(r.Rates))
	for c := range r.Rates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ApplyMarkup raises rate by percent and rounds to 2 decimal places
func ApplyMarkup(rate, percent float64) float64 {
	return pricing.RoundFloat(rate+rate*(percent/100), 2)
}

// Registry manages rate sources by name
type Registry struct {
	sources map[string]Source
	mu      sync.RWMutex
}

// NewRegistry creates a new registry
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register registers a source
func (r *Registry) Register(source Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.Name()] = source
}

// Get returns a source by name
func (r *Registry) Get(name string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.sources[name]
	return source, ok
}

// List returns all registered source names
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves names into sources, preserving order
func (r *Registry) Select(names ...string) ([]Source, error) {
	out := make([]Source, 0, len(names))
	for _, name := range names {
		source, ok := r.Get(name)
		if !ok {
			return nil, errors.Newf(errors.TypeConfig, "unknown rate source: %s", name)
		}
		out = append(out, source)
	}
	return out, nil
}
