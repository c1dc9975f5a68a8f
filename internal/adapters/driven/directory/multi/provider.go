// Package multi merges several directory providers into one. Providers
// are fetched concurrently and the results are de-duplicated by ID.
package multi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.DirectoryProvider = (*Provider)(nil)

// Provider fans a fetch out to several underlying providers.
type Provider struct {
	providers []driven.DirectoryProvider
}

// NewProvider creates a merged provider over the given providers.
func NewProvider(providers ...driven.DirectoryProvider) *Provider {
	return &Provider{providers: providers}
}

// FetchAll fetches from every provider concurrently and merges the
// results. A failing provider only loses its own contribution: the
// merge degrades to the successful subset, and an error is returned
// only when every provider fails.
func (p *Provider) FetchAll(ctx context.Context, forceRefresh bool) ([]domain.Contact, error) {
	if len(p.providers) == 0 {
		return nil, nil
	}
	if len(p.providers) == 1 {
		return p.providers[0].FetchAll(ctx, forceRefresh)
	}

	results := make([][]domain.Contact, len(p.providers))
	errs := make([]error, len(p.providers))

	// A plain errgroup.Group, not WithContext: one failing source must
	// not cancel the fetches still in flight.
	var g errgroup.Group
	for i, provider := range p.providers {
		g.Go(func() error {
			contacts, err := provider.FetchAll(ctx, forceRefresh)
			if err != nil {
				logger.Warn("multi directory: source %d failed: %v", i, err)
				errs[i] = err
				return nil
			}
			results[i] = contacts
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	var firstErr error
	for _, err := range errs {
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if failed == len(p.providers) {
		return nil, fmt.Errorf("all %d directory sources failed: %w", failed, firstErr)
	}

	return merge(results), nil
}

// merge flattens per-provider results, dropping duplicate IDs. The
// first provider to report an ID wins. Output is sorted by name so the
// merged order is stable across fetches.
func merge(results [][]domain.Contact) []domain.Contact {
	seen := make(map[string]struct{})
	var merged []domain.Contact
	for _, contacts := range results {
		for _, c := range contacts {
			if _, dup := seen[c.ID]; dup {
				logger.Debug("multi directory: dropping duplicate contact %s", c.ID)
				continue
			}
			seen[c.ID] = struct{}{}
			merged = append(merged, c)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		ni, nj := strings.ToLower(merged[i].Name), strings.ToLower(merged[j].Name)
		if ni != nj {
			return ni < nj
		}
		return merged[i].ID < merged[j].ID
	})

	return merged
}
