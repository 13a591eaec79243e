package dto

import (
	"time"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
)

// PairSourceItem is one routing configuration entry in a bulk upsert.
type PairSourceItem struct {
	BaseCode     string `json:"baseCode" binding:"required,currency"`
	QuoteCode    string `json:"quoteCode" binding:"required,currency"`
	ProviderCode string `json:"providerCode" binding:"required"`
	Priority     int    `json:"priority" binding:"required,min=1"`
}

// UpsertPairSourcesRequest carries a bulk pair-source upsert.
type UpsertPairSourcesRequest struct {
	Items []PairSourceItem `json:"items" binding:"required,min=1,dive"`
}

// DeletePairSourceItem targets a directed pair, optionally narrowed to one
// provider.
type DeletePairSourceItem struct {
	BaseCode     string `json:"baseCode" binding:"required,currency"`
	QuoteCode    string `json:"quoteCode" binding:"required,currency"`
	ProviderCode string `json:"providerCode,omitempty"`
}

// DeletePairSourcesRequest carries a bulk pair-source deletion.
type DeletePairSourcesRequest struct {
	Items []DeletePairSourceItem `json:"items" binding:"required,min=1,dive"`
}

// PairSourceResult is the per-item outcome of a bulk pair-source operation.
type PairSourceResult struct {
	BaseCode     string `json:"baseCode"`
	QuoteCode    string `json:"quoteCode"`
	ProviderCode string `json:"providerCode,omitempty"`
	Priority     int    `json:"priority,omitempty"`
	Status       string `json:"status"`
	Warning      string `json:"warning,omitempty"`
}

// PairSourceResponse is the API shape of one stored pair source.
type PairSourceResponse struct {
	BaseCode     string    `json:"baseCode"`
	QuoteCode    string    `json:"quoteCode"`
	ProviderCode string    `json:"providerCode"`
	Priority     int       `json:"priority"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToPairSourceResponse converts a domain.PairSource to its API shape.
func ToPairSourceResponse(ps domain.PairSource) PairSourceResponse {
	return PairSourceResponse{
		BaseCode:     ps.BaseCode,
		QuoteCode:    ps.QuoteCode,
		ProviderCode: ps.ProviderCode,
		Priority:     ps.Priority,
		CreatedAt:    ps.CreatedAt,
		UpdatedAt:    ps.UpdatedAt,
	}
}

// ToListPairSourceResponse converts a slice of pair sources.
func ToListPairSourceResponse(sources []domain.PairSource) []PairSourceResponse {
	responses := make([]PairSourceResponse, len(sources))
	for i, ps := range sources {
		responses[i] = ToPairSourceResponse(ps)
	}
	return responses
}
