package rates

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"landed-cost/internal/errors"
)

// Chain queries several sources concurrently and merges their rates.
// Earlier sources take precedence for a currency quoted by more than one.
type Chain struct {
	sources []Source
	timeout time.Duration
}

// NewChain creates a chain. A zero timeout leaves fetches bounded only by
// the caller's context.
func NewChain(timeout time.Duration, sources ...Source) *Chain {
	return &Chain{sources: sources, timeout: timeout}
}

// Name returns the combined source name
func (c *Chain) Name() string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Fetch fails only when every source fails
func (c *Chain) Fetch(ctx context.Context) (*FetchResult, error) {
	if len(c.sources) == 0 {
		return nil, errors.New(errors.TypeConfig, "no rate sources configured")
	}

	results := make([]*FetchResult, len(c.sources))
	errs := make([]error, len(c.sources))

	var g errgroup.Group
	for i, source := range c.sources {
		g.Go(func() error {
			fetchCtx := ctx
			if c.timeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
				defer cancel()
			}
			results[i], errs[i] = source.Fetch(fetchCtx)
			return nil
		})
	}
	_ = g.Wait()

	merged := &FetchResult{Rates: make(Rates)}
	var used []string
	for i, result := range results {
		if errs[i] != nil || result == nil {
			continue
		}
		used = append(used, result.Source)
		for code, rate := range result.Rates {
			if _, ok := merged.Rates[code]; !ok {
				merged.Rates[code] = rate
			}
		}
		if result.FetchedAt.After(merged.FetchedAt) {
			merged.FetchedAt = result.FetchedAt
		}
	}

	if len(used) == 0 {
		return nil, errors.Wrap(errors.TypeRateUnavailable, "all rate sources failed", stderrors.Join(errs...))
	}

	merged.Source = strings.Join(used, "+")
	return merged, nil
}
