package dto

import (
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest asks for a single conversion as of one date.
type ConvertRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	FromCode string          `json:"fromCode" binding:"required,currency"`
	ToCode   string          `json:"toCode" binding:"required,currency"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// ConvertBulkItem is one request in a bulk conversion. An EndDate expands
// the item into one conversion per day in [Date, EndDate].
type ConvertBulkItem struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	FromCode string          `json:"fromCode" binding:"required,currency"`
	ToCode   string          `json:"toCode" binding:"required,currency"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
	EndDate  string          `json:"endDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// ConvertBulkRequest carries independent conversion requests.
type ConvertBulkRequest struct {
	Items []ConvertBulkItem `json:"items" binding:"required,min=1,dive"`
}

// ConversionResponse is the API shape of one conversion outcome.
type ConversionResponse struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	FromCode        string          `json:"fromCode"`
	ToCode          string          `json:"toCode"`
	Rate            decimal.Decimal `json:"rate"`
	RequestedDate   string          `json:"requestedDate"`
	RateDate        string          `json:"rateDate"`
	RateSource      string          `json:"rateSource,omitempty"`
	BackwardFilled  bool            `json:"backwardFilled"`
	DaysBack        int             `json:"daysBack"`
}

// ConversionOutcome is the per-item result of a bulk conversion: either a
// conversion or an error message, never both.
type ConversionOutcome struct {
	Conversion *ConversionResponse `json:"conversion,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// ToConversionResponse converts a domain.Conversion to its API shape.
func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:  c.OriginalAmount,
		ConvertedAmount: c.ConvertedAmount,
		FromCode:        c.FromCode,
		ToCode:          c.ToCode,
		Rate:            c.Rate,
		RequestedDate:   domain.DayKey(c.RequestedDate),
		RateDate:        domain.DayKey(c.RateDate),
		RateSource:      c.RateSource,
		BackwardFilled:  c.BackwardFilled,
		DaysBack:        c.DaysBack,
	}
}
