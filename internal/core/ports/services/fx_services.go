package services

import (
	"context"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/ratesworks/fx_rates_app/internal/dto"
)

// ProviderSvcFacade exposes the static provider catalogue.
type ProviderSvcFacade interface {
	// ListProviders returns metadata for every registered provider.
	ListProviders(ctx context.Context) []domain.ProviderInfo

	// ListProviderCurrencies returns the quote currencies one provider
	// supports.
	ListProviderCurrencies(ctx context.Context, code string) ([]string, error)
}

// PairSourceSvcFacade manages the routing configuration used by auto-mode
// syncs.
type PairSourceSvcFacade interface {
	// ListPairSources returns configured pair sources matching the filter.
	ListPairSources(ctx context.Context, filter domain.PairSourceFilter) ([]domain.PairSource, error)

	// UpsertPairSources validates and persists a batch atomically,
	// returning one result per item.
	UpsertPairSources(ctx context.Context, req dto.UpsertPairSourcesRequest) ([]dto.PairSourceResult, error)

	// DeletePairSources removes configurations, returning one result per
	// item; missing targets produce warnings, not errors.
	DeletePairSources(ctx context.Context, req dto.DeletePairSourcesRequest) ([]dto.PairSourceResult, error)
}

// SyncSvcFacade runs rate acquisition.
type SyncSvcFacade interface {
	// Sync fetches, normalizes and upserts rates for a date range. With a
	// provider code the fetch is direct; without one each pair is routed
	// through its configured providers with priority fallback.
	Sync(ctx context.Context, req dto.SyncRequest) (*domain.SyncResult, error)
}

// ConversionSvcFacade converts amounts between currencies using stored
// rates with unbounded backward fill.
type ConversionSvcFacade interface {
	// Convert resolves the most recent rate at or before the requested
	// date and converts the amount.
	Convert(ctx context.Context, req dto.ConvertRequest) (*domain.Conversion, error)

	// ConvertBulk processes requests independently; one item's failure
	// never aborts the batch.
	ConvertBulk(ctx context.Context, req dto.ConvertBulkRequest) ([]dto.ConversionOutcome, error)
}

// RateSvcFacade exposes stored-rate listing and bulk deletion.
type RateSvcFacade interface {
	// ListRates returns stored rates matching the filter with pagination.
	ListRates(ctx context.Context, filter domain.RateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error)

	// DeleteRates removes stored rates per item, chunked under the
	// storage engine's parameter ceiling and transactional per item.
	DeleteRates(ctx context.Context, req dto.DeleteRatesRequest) ([]domain.RateDeletion, error)
}
