package dto

import "github.com/ratesworks/fx_rates_app/internal/core/domain"

// SyncRequest asks the orchestrator to acquire rates for a date range.
// Omitting ProviderCode selects auto mode, which routes each currency
// through its configured pair sources with priority fallback.
type SyncRequest struct {
	StartDate    string   `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate      string   `json:"endDate" binding:"required,datetime=2006-01-02"`
	Currencies   []string `json:"currencies" binding:"required,min=1,dive,currency"`
	ProviderCode string   `json:"providerCode,omitempty"`
	HomeCurrency string   `json:"homeCurrency,omitempty" binding:"omitempty,currency"`
}

// SyncResponse is the API shape of a sync outcome.
type SyncResponse struct {
	SyncedCount int                `json:"syncedCount"`
	Errors      []domain.SyncError `json:"errors"`
}

// ToSyncResponse converts a domain.SyncResult to its API shape.
func ToSyncResponse(result *domain.SyncResult) SyncResponse {
	errs := result.Errors
	if errs == nil {
		errs = []domain.SyncError{}
	}
	return SyncResponse{SyncedCount: result.SyncedCount, Errors: errs}
}
