package dto

import (
	"time"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DeleteRatesItem targets stored rates for a directed pair over a date or
// date range (EndDate defaults to StartDate).
type DeleteRatesItem struct {
	BaseCode  string `json:"baseCode" binding:"required,currency"`
	QuoteCode string `json:"quoteCode" binding:"required,currency"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// DeleteRatesRequest carries a bulk rate deletion.
type DeleteRatesRequest struct {
	Items []DeleteRatesItem `json:"items" binding:"required,min=1,dive"`
}

// DeleteRatesResult is the per-item outcome of a bulk rate deletion.
type DeleteRatesResult struct {
	BaseCode      string `json:"baseCode"`
	QuoteCode     string `json:"quoteCode"`
	ExistingCount int    `json:"existingCount"`
	DeletedCount  int    `json:"deletedCount"`
	Warning       string `json:"warning,omitempty"`
}

// ToDeleteRatesResult converts a domain.RateDeletion to its API shape.
func ToDeleteRatesResult(d domain.RateDeletion) DeleteRatesResult {
	return DeleteRatesResult{
		BaseCode:      d.BaseCode,
		QuoteCode:     d.QuoteCode,
		ExistingCount: d.ExistingCount,
		DeletedCount:  d.DeletedCount,
		Warning:       d.Warning,
	}
}

// RateResponse is the API shape of one stored rate.
type RateResponse struct {
	Date      string          `json:"date"`
	BaseCode  string          `json:"baseCode"`
	QuoteCode string          `json:"quoteCode"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// ListRatesResponse is a paginated rate listing.
type ListRatesResponse struct {
	Rates    []RateResponse `json:"rates"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// ToRateResponse converts a domain.ExchangeRate to its API shape.
func ToRateResponse(r domain.ExchangeRate) RateResponse {
	return RateResponse{
		Date:      domain.DayKey(r.Date),
		BaseCode:  r.BaseCode,
		QuoteCode: r.QuoteCode,
		Rate:      r.Rate,
		Source:    r.Source,
		FetchedAt: r.FetchedAt,
	}
}

// ToListRatesResponse converts a page of rates.
func ToListRatesResponse(rates []domain.ExchangeRate, total, page, pageSize int) ListRatesResponse {
	responses := make([]RateResponse, len(rates))
	for i, r := range rates {
		responses[i] = ToRateResponse(r)
	}
	return ListRatesResponse{Rates: responses, Total: total, Page: page, PageSize: pageSize}
}
