package repositories

import (
	"context"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
)

// RateReader defines read operations for stored exchange rates.
type RateReader interface {
	// FindRatesInRange returns every stored rate for the given directed
	// pairs within [start, end], keyed by (day, base, quote). Used by the
	// sync orchestrator's pre-existing-rate lookup.
	FindRatesInRange(ctx context.Context, pairs []domain.PairKey, start, end time.Time) (map[domain.RateKey]domain.ExchangeRate, error)

	// FindRateOnOrBefore returns the most recent stored rate for the
	// directed pair at or before date, with no lower bound on how far back
	// it may reach. Wraps apperrors.ErrNotFound when none exists.
	FindRateOnOrBefore(ctx context.Context, base, quote string, date time.Time) (*domain.ExchangeRate, error)

	// ListRates returns stored rates matching the filter, newest first,
	// with offset pagination. The second result is the total match count.
	ListRates(ctx context.Context, filter domain.RateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// RateWriter defines write operations for stored exchange rates.
type RateWriter interface {
	// UpsertRates inserts or replaces rates on their (date, base, quote)
	// natural key in a single batched round trip.
	UpsertRates(ctx context.Context, rates []domain.ExchangeRate) error

	// DeleteRatesInRange removes every rate for the directed pair within
	// [start, end]. It reports how many rows existed and how many were
	// deleted; the chunked statements run inside one transaction.
	DeleteRatesInRange(ctx context.Context, base, quote string, start, end time.Time) (existing int, deleted int, err error)
}

// RateRepositoryFacade combines all rate repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
