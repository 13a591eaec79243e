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
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// RateService exposes stored-rate listing and bulk deletion.
type RateService struct {
	rateRepo portsrepo.RateRepositoryFacade
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade) *RateService {
	return &RateService{rateRepo: rateRepo}
}

// ListRates returns stored rates matching the filter with pagination.
func (s *RateService) ListRates(ctx context.Context, filter domain.RateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	filter.BaseCode = domain.NormalizeCode(filter.BaseCode)
	filter.QuoteCode = domain.NormalizeCode(filter.QuoteCode)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	rates, total, err := s.rateRepo.ListRates(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, total, nil
}

// deleteTarget is a validated deletion item.
type deleteTarget struct {
	base, quote string
	start, end  time.Time
}

// DeleteRates removes stored rates per item. Structurally invalid input
// (any malformed range) fails the whole call before any row is touched;
// after that, items are processed independently and a target with no
// matching rows yields a warning, not an error. Re-running the same
// deletion is safe and reports zero counts.
func (s *RateService) DeleteRates(ctx context.Context, req dto.DeleteRatesRequest) ([]domain.RateDeletion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	targets := make([]deleteTarget, len(req.Items))
	for i, item := range req.Items {
		start, err := domain.ParseDay(item.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("item %d: invalid start date %q", i, item.StartDate))
		}
		end := start
		if item.EndDate != "" {
			end, err = domain.ParseDay(item.EndDate)
			if err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("item %d: invalid end date %q", i, item.EndDate))
			}
		}
		if err := domain.ValidateDateRange(start, end); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("item %d: %v", i, err))
		}
		base := domain.NormalizeCode(item.BaseCode)
		quote := domain.NormalizeCode(item.QuoteCode)
		if base == quote {
			return nil, apperrors.NewValidationError(fmt.Sprintf("item %d: base and quote currency cannot both be %s", i, base))
		}
		targets[i] = deleteTarget{base: base, quote: quote, start: start, end: end}
	}

	results := make([]domain.RateDeletion, len(targets))
	for i, t := range targets {
		existing, deleted, err := s.rateRepo.DeleteRatesInRange(ctx, t.base, t.quote, t.start, t.end)
		if err != nil {
			return nil, fmt.Errorf("failed to delete rates for %s/%s: %w", t.base, t.quote, err)
		}
		result := domain.RateDeletion{
			BaseCode:      t.base,
			QuoteCode:     t.quote,
			ExistingCount: existing,
			DeletedCount:  deleted,
		}
		if existing == 0 {
			result.Warning = fmt.Sprintf("no rates stored for %s/%s between %s and %s",
				t.base, t.quote, domain.DayKey(t.start), domain.DayKey(t.end))
		} else {
			logger.Info("Deleted stored rates",
				slog.String("base", t.base),
				slog.String("quote", t.quote),
				slog.Int("deleted", deleted))
		}
		results[i] = result
	}
	return results, nil
}
