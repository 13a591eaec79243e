package repositories

import (
	"context"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
)

// PairSourceReader defines read operations for routing configuration.
type PairSourceReader interface {
	// ListPairSources returns configured pair sources matching the filter,
	// ordered by base, quote, priority.
	ListPairSources(ctx context.Context, filter domain.PairSourceFilter) ([]domain.PairSource, error)

	// FindPairSourcesByKeys returns the stored rows for the given
	// (base, quote, priority) keys in a single batched query. Used for
	// pre-commit collision validation without per-item round trips.
	FindPairSourcesByKeys(ctx context.Context, keys []domain.PairSourceKey) ([]domain.PairSource, error)

	// ListPairSourcesForQuotes returns every pair source whose quote
	// currency is in quotes, ordered by base, quote, priority. Used by
	// auto-routing.
	ListPairSourcesForQuotes(ctx context.Context, quotes []string) ([]domain.PairSource, error)
}

// PairSourceWriter defines write operations for routing configuration.
type PairSourceWriter interface {
	// UpsertPairSources inserts or updates the batch atomically on the
	// (base, quote, priority) natural key.
	UpsertPairSources(ctx context.Context, items []domain.PairSource) error

	// DeletePairSources removes pair sources for a directed pair,
	// optionally narrowed to one provider, and reports how many rows were
	// removed.
	DeletePairSources(ctx context.Context, base, quote, providerCode string) (int, error)
}

// PairSourceRepositoryFacade combines all pair-source repository interfaces.
type PairSourceRepositoryFacade interface {
	PairSourceReader
	PairSourceWriter
}
