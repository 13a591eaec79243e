package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	portsrepo "github.com/ratesworks/fx_rates_app/internal/core/ports/repositories"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ConversionService converts amounts between currencies using stored rates
// with unbounded backward fill. Conversions are always computed on demand;
// the engine keeps no cache, so deletions need no invalidation here.
type ConversionService struct {
	rateRepo portsrepo.RateReader
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rateRepo portsrepo.RateReader) *ConversionService {
	return &ConversionService{rateRepo: rateRepo}
}

// Convert resolves the most recent available rate at or before the
// requested date and converts the amount.
func (s *ConversionService) Convert(ctx context.Context, req dto.ConvertRequest) (*domain.Conversion, error) {
	date, err := domain.ParseDay(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	return s.convertOn(ctx, req.Amount, req.FromCode, req.ToCode, date)
}

// ConvertBulk processes items independently. An item with an end date is
// expanded into one conversion per day in its range; one item's failure
// never aborts the batch.
func (s *ConversionService) ConvertBulk(ctx context.Context, req dto.ConvertBulkRequest) ([]dto.ConversionOutcome, error) {
	var outcomes []dto.ConversionOutcome
	for _, item := range req.Items {
		start, err := domain.ParseDay(item.Date)
		if err != nil {
			outcomes = append(outcomes, dto.ConversionOutcome{Error: fmt.Sprintf("invalid date %q", item.Date)})
			continue
		}
		end := start
		if item.EndDate != "" {
			end, err = domain.ParseDay(item.EndDate)
			if err != nil {
				outcomes = append(outcomes, dto.ConversionOutcome{Error: fmt.Sprintf("invalid end date %q", item.EndDate)})
				continue
			}
		}
		if err := domain.ValidateDateRange(start, end); err != nil {
			outcomes = append(outcomes, dto.ConversionOutcome{Error: err.Error()})
			continue
		}

		for _, day := range domain.DaysBetween(start, end) {
			conv, err := s.convertOn(ctx, item.Amount, item.FromCode, item.ToCode, day)
			if err != nil {
				outcomes = append(outcomes, dto.ConversionOutcome{Error: err.Error()})
				continue
			}
			resp := dto.ToConversionResponse(conv)
			outcomes = append(outcomes, dto.ConversionOutcome{Conversion: &resp})
		}
	}
	return outcomes, nil
}

// convertOn performs one conversion as of one day.
func (s *ConversionService) convertOn(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date time.Time) (*domain.Conversion, error) {
	from := domain.NormalizeCode(fromCode)
	to := domain.NormalizeCode(toCode)

	// Identity conversions never touch the store.
	if from == to {
		return &domain.Conversion{
			OriginalAmount:  amount,
			ConvertedAmount: amount,
			FromCode:        from,
			ToCode:          to,
			Rate:            decimal.NewFromInt(1),
			RequestedDate:   date,
			RateDate:        date,
			BackwardFilled:  false,
			DaysBack:        0,
		}, nil
	}

	rate, rateDate, source, err := s.resolveRate(ctx, from, to, date)
	if err != nil {
		return nil, err
	}

	daysBack := int(date.Sub(rateDate).Hours() / 24)
	return &domain.Conversion{
		OriginalAmount:  amount,
		ConvertedAmount: amount.Mul(rate),
		FromCode:        from,
		ToCode:          to,
		Rate:            rate,
		RequestedDate:   date,
		RateDate:        rateDate,
		RateSource:      source,
		BackwardFilled:  daysBack > 0,
		DaysBack:        daysBack,
	}, nil
}

// resolveRate finds the most recent rate at or before date for the directed
// pair, falling back to the reciprocal of the inverse direction. The
// backward scan has no lookback limit; only a pair with no history in
// either direction fails.
func (s *ConversionService) resolveRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, time.Time, string, error) {
	direct, err := s.rateRepo.FindRateOnOrBefore(ctx, from, to, date)
	if err == nil {
		return direct.Rate, direct.Date, direct.Source, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, time.Time{}, "", fmt.Errorf("failed to look up rate for %s/%s: %w", from, to, err)
	}

	inverse, invErr := s.rateRepo.FindRateOnOrBefore(ctx, to, from, date)
	if invErr == nil {
		if inverse.Rate.IsZero() {
			return decimal.Zero, time.Time{}, "", fmt.Errorf("%w: stored inverse rate for %s/%s is zero", apperrors.ErrNoRateAvailable, to, from)
		}
		return decimal.NewFromInt(1).DivRound(inverse.Rate, domain.RateScale+6), inverse.Date, inverse.Source, nil
	}
	if !errors.Is(invErr, apperrors.ErrNotFound) {
		return decimal.Zero, time.Time{}, "", fmt.Errorf("failed to look up inverse rate for %s/%s: %w", to, from, invErr)
	}

	return decimal.Zero, time.Time{}, "", fmt.Errorf("%w: no rate for %s/%s on or before %s in either direction",
		apperrors.ErrNoRateAvailable, from, to, domain.DayKey(date))
}
