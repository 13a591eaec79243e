package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	portsrepo "github.com/ratesworks/fx_rates_app/internal/core/ports/repositories"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/ratesworks/fx_rates_app/internal/middleware"
	"github.com/ratesworks/fx_rates_app/internal/providers"
)

// PairSourceService provides business logic for routing configuration.
type PairSourceService struct {
	pairRepo portsrepo.PairSourceRepositoryFacade
	registry *providers.Registry
	now      func() time.Time
}

// NewPairSourceService creates a new PairSourceService.
func NewPairSourceService(pairRepo portsrepo.PairSourceRepositoryFacade, registry *providers.Registry) *PairSourceService {
	return &PairSourceService{
		pairRepo: pairRepo,
		registry: registry,
		now:      time.Now,
	}
}

// ListPairSources returns configured pair sources matching the filter.
func (s *PairSourceService) ListPairSources(ctx context.Context, filter domain.PairSourceFilter) ([]domain.PairSource, error) {
	filter.BaseCode = domain.NormalizeCode(filter.BaseCode)
	filter.QuoteCode = domain.NormalizeCode(filter.QuoteCode)
	sources, err := s.pairRepo.ListPairSources(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pair sources: %w", err)
	}
	return sources, nil
}

// UpsertPairSources validates and persists a batch atomically. The whole
// batch is rejected when any item has base == quote, when two items in the
// batch collide on (base, quote, priority), or when an item collides with a
// different provider already stored at that key. Inverse pairs are
// independent and never collide with each other.
//
// Collision checking against stored rows uses one batched existence query
// across all candidate keys, not one query per item.
func (s *PairSourceService) UpsertPairSources(ctx context.Context, req dto.UpsertPairSourcesRequest) ([]dto.PairSourceResult, error) {
	now := s.now()

	items := make([]domain.PairSource, len(req.Items))
	keys := make([]domain.PairSourceKey, len(req.Items))
	seen := make(map[domain.PairSourceKey]int, len(req.Items))
	for i, item := range req.Items {
		base := domain.NormalizeCode(item.BaseCode)
		quote := domain.NormalizeCode(item.QuoteCode)
		if base == quote {
			return nil, fmt.Errorf("%w: item %d: base and quote currency cannot both be %s", apperrors.ErrValidation, i, base)
		}
		if _, err := s.registry.Get(item.ProviderCode); err != nil {
			return nil, fmt.Errorf("%w: item %d: unknown provider %q", apperrors.ErrValidation, i, item.ProviderCode)
		}

		key := domain.PairSourceKey{Base: base, Quote: quote, Priority: item.Priority}
		if j, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: items %d and %d both configure %s/%s at priority %d",
				apperrors.ErrValidation, j, i, base, quote, item.Priority)
		}
		seen[key] = i

		keys[i] = key
		items[i] = domain.PairSource{
			BaseCode:     base,
			QuoteCode:    quote,
			ProviderCode: item.ProviderCode,
			Priority:     item.Priority,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	existing, err := s.pairRepo.FindPairSourcesByKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing pair sources: %w", err)
	}
	stored := make(map[domain.PairSourceKey]string, len(existing))
	for _, ps := range existing {
		stored[domain.PairSourceKey{Base: ps.BaseCode, Quote: ps.QuoteCode, Priority: ps.Priority}] = ps.ProviderCode
	}
	for i, item := range items {
		key := keys[i]
		if storedProvider, ok := stored[key]; ok && storedProvider != item.ProviderCode {
			return nil, fmt.Errorf("%w: %s/%s priority %d is already assigned to provider %q",
				apperrors.ErrValidation, item.BaseCode, item.QuoteCode, item.Priority, storedProvider)
		}
	}

	if err := s.pairRepo.UpsertPairSources(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to upsert pair sources: %w", err)
	}

	results := make([]dto.PairSourceResult, len(items))
	for i, item := range items {
		results[i] = dto.PairSourceResult{
			BaseCode:     item.BaseCode,
			QuoteCode:    item.QuoteCode,
			ProviderCode: item.ProviderCode,
			Priority:     item.Priority,
			Status:       "upserted",
		}
	}
	return results, nil
}

// DeletePairSources removes configurations item by item. A target that does
// not exist yields a warning in its result, never an error.
func (s *PairSourceService) DeletePairSources(ctx context.Context, req dto.DeletePairSourcesRequest) ([]dto.PairSourceResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	results := make([]dto.PairSourceResult, len(req.Items))
	for i, item := range req.Items {
		base := domain.NormalizeCode(item.BaseCode)
		quote := domain.NormalizeCode(item.QuoteCode)

		deleted, err := s.pairRepo.DeletePairSources(ctx, base, quote, item.ProviderCode)
		if err != nil {
			return nil, fmt.Errorf("failed to delete pair sources for %s/%s: %w", base, quote, err)
		}

		result := dto.PairSourceResult{
			BaseCode:     base,
			QuoteCode:    quote,
			ProviderCode: item.ProviderCode,
			Status:       "deleted",
		}
		if deleted == 0 {
			result.Warning = fmt.Sprintf("no pair source configured for %s/%s", base, quote)
			logger.Warn("Delete target did not exist",
				slog.String("base", base), slog.String("quote", quote))
		}
		results[i] = result
	}
	return results, nil
}
