package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateScale is the number of fractional digits a rate is quantized to at
// write time. It matches the NUMERIC(24,10) column in the exchange_rates
// table.
const RateScale = 10

// DayLayout is the wire and map-key format for calendar days. Stored rates
// carry no time component.
const DayLayout = "2006-01-02"

// ParseDay parses a calendar day in DayLayout, in UTC.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// DayKey formats a time as a calendar-day map key.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// NormalizeCode uppercases a currency code for storage and comparison.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ExchangeRate is one daily quote: 1 BaseCode = Rate QuoteCode.
// (date, base, quote) is the natural key; both directions of a pair may be
// stored as independent rows because different providers quote against
// different home currencies.
type ExchangeRate struct {
	Date      time.Time       `json:"date"`
	BaseCode  string          `json:"baseCode"`
	QuoteCode string          `json:"quoteCode"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// PairKey identifies a directed currency pair. EUR->USD and USD->EUR are
// distinct keys.
type PairKey struct {
	Base  string
	Quote string
}

func (k PairKey) String() string {
	return k.Base + "/" + k.Quote
}

// RateKey identifies a single stored quote.
type RateKey struct {
	Day   string
	Base  string
	Quote string
}

// KeyOf builds the lookup key for a rate.
func KeyOf(r ExchangeRate) RateKey {
	return RateKey{Day: DayKey(r.Date), Base: r.BaseCode, Quote: r.QuoteCode}
}

// RateFilter narrows a stored-rate listing.
type RateFilter struct {
	BaseCode  string
	QuoteCode string
	Source    string
	From      *time.Time
	To        *time.Time
}

// PairSource binds a directed pair to a provider at a priority. Lower
// priority numbers are tried first during auto-routed syncs. The inverse
// pair is configured independently.
type PairSource struct {
	BaseCode     string    `json:"baseCode"`
	QuoteCode    string    `json:"quoteCode"`
	ProviderCode string    `json:"providerCode"`
	Priority     int       `json:"priority"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PairSourceKey is the natural key of a pair-source row.
type PairSourceKey struct {
	Base     string
	Quote    string
	Priority int
}

// PairSourceFilter narrows a pair-source listing.
type PairSourceFilter struct {
	BaseCode     string
	QuoteCode    string
	ProviderCode string
}

// RateTable is a provider fetch result: day key -> currency code -> raw
// quote, expressed as "1 home = X currency" in the provider's published
// unit (multi-unit currencies are still per N units here; the normalizer
// rescales them).
type RateTable map[string]map[string]decimal.Decimal

// ProviderInfo is the registry metadata for one provider.
type ProviderInfo struct {
	Code                string   `json:"code"`
	Name                string   `json:"name"`
	HomeCurrencies      []string `json:"homeCurrencies"`
	SupportedCurrencies []string `json:"supportedCurrencies"`
	MultiUnitCurrencies []string `json:"multiUnitCurrencies"`
}

// SyncError reports a pair (or currency) that could not be synced. The sync
// call itself still succeeds; errors are per-item.
type SyncError struct {
	BaseCode     string `json:"baseCode,omitempty"`
	QuoteCode    string `json:"quoteCode"`
	ProviderCode string `json:"providerCode,omitempty"`
	Message      string `json:"message"`
}

// SyncResult summarizes one sync call. SyncedCount counts genuinely written
// rows; unchanged rates detected by the truncation-aware comparison are not
// counted.
type SyncResult struct {
	SyncedCount int
	Errors      []SyncError
}

// Conversion is the outcome of a single currency conversion.
type Conversion struct {
	OriginalAmount  decimal.Decimal
	ConvertedAmount decimal.Decimal
	FromCode        string
	ToCode          string
	Rate            decimal.Decimal
	RequestedDate   time.Time
	RateDate        time.Time
	RateSource      string
	BackwardFilled  bool
	DaysBack        int
}

// RateDeletion reports one bulk-deletion target. Deleting rates that do not
// exist is not an error; it is reported with a warning and zero counts.
type RateDeletion struct {
	BaseCode      string
	QuoteCode     string
	ExistingCount int
	DeletedCount  int
	Warning       string
}

// ValidateDateRange rejects inverted ranges before any I/O happens.
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s", DayKey(start), DayKey(end))
	}
	return nil
}

// DaysBetween enumerates every calendar day from start to end inclusive.
func DaysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
