package providers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const cnbDailyURL = "https://www.cnb.cz/en/financial-markets/foreign-exchange-market/central-bank-exchange-rate-fixing/central-bank-exchange-rate-fixing/daily.txt"

var cnbCurrencies = []string{
	"AUD", "BGN", "BRL", "CAD", "CHF", "CNY", "DKK", "EUR", "GBP", "HKD",
	"HUF", "IDR", "ILS", "INR", "ISK", "JPY", "KRW", "MXN", "MYR", "NOK",
	"NZD", "PHP", "PLN", "RON", "SEK", "SGD", "THB", "TRY", "USD", "XDR", "ZAR",
}

// cnbMultiUnit lists the currencies the CNB fixing quotes per 100 or per
// 1000 units. The published rate for these is "Amount currency = X CZK".
var cnbMultiUnit = map[string]int64{
	"HUF": 100,
	"IDR": 1000,
	"INR": 100,
	"ISK": 100,
	"JPY": 100,
	"KRW": 100,
	"PHP": 100,
	"THB": 100,
}

// CNB fetches the Czech National Bank daily exchange-rate fixing, a
// pipe-delimited text feed with one request per calendar day.
type CNB struct {
	client  *http.Client
	baseURL string
}

// NewCNB creates the CNB provider.
func NewCNB(client *http.Client) *CNB {
	return &CNB{client: client, baseURL: cnbDailyURL}
}

func (c *CNB) Code() string { return "cnb" }

func (c *CNB) Name() string { return "Czech National Bank" }

func (c *CNB) HomeCurrencies() []string { return []string{"CZK"} }

func (c *CNB) SupportedCurrencies() []string { return cnbCurrencies }

func (c *CNB) MultiUnitCurrencies() map[string]int64 { return cnbMultiUnit }

// FetchRates requests the fixing for every day in [start, end]. The CNB
// serves the most recent previous fixing for non-trading days; those
// responses are detected by their header date and skipped, so absent days
// are omitted rather than duplicated.
//
// The feed quotes "Amount foreign = X CZK"; the quote is inverted here to
// satisfy the "1 home = X other" contract, still scaled per Amount units
// (the normalizer applies the multi-unit rescale).
func (c *CNB) FetchRates(ctx context.Context, start, end time.Time, currencies []string, home string) (domain.RateTable, error) {
	if err := checkHome(c, home); err != nil {
		return nil, err
	}

	wanted := currencySet(currencies)
	table := make(domain.RateTable)
	for _, day := range domain.DaysBetween(start, end) {
		url := fmt.Sprintf("%s?date=%s", c.baseURL, day.Format("02.01.2006"))
		body, err := fetchBody(ctx, c.client, url)
		if err != nil {
			return nil, err
		}
		quotes, fixingDate, err := parseCNBFixing(string(body), wanted)
		if err != nil {
			return nil, err
		}
		if !fixingDate.Equal(day) {
			// Non-trading day: the CNB answered with an older fixing.
			continue
		}
		if len(quotes) > 0 {
			table[domain.DayKey(day)] = quotes
		}
	}
	return table, nil
}

// parseCNBFixing parses one daily fixing document. Format:
//
//	03 Jan 2024 #2
//	Country|Currency|Amount|Code|Rate
//	Australia|dollar|1|AUD|15.233
//	Japan|yen|100|JPY|15.651
func parseCNBFixing(body string, wanted map[string]bool) (map[string]decimal.Decimal, time.Time, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 2 {
		return nil, time.Time{}, fmt.Errorf("%w: CNB fixing shorter than header", apperrors.ErrProviderFetch)
	}

	header := strings.TrimSpace(lines[0])
	if i := strings.Index(header, "#"); i > 0 {
		header = strings.TrimSpace(header[:i])
	}
	fixingDate, err := time.Parse("02 Jan 2006", header)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: bad CNB fixing date %q: %v", apperrors.ErrProviderFetch, header, err)
	}

	quotes := make(map[string]decimal.Decimal)
	for _, line := range lines[2:] {
		fields := strings.Split(strings.TrimSpace(line), "|")
		if len(fields) != 5 {
			continue
		}
		code := domain.NormalizeCode(fields[3])
		if !wanted[code] {
			continue
		}
		amount, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil || amount <= 0 {
			return nil, time.Time{}, fmt.Errorf("%w: bad CNB amount %q for %s", apperrors.ErrProviderFetch, fields[2], code)
		}
		czkPerAmount, err := decimal.NewFromString(strings.ReplaceAll(fields[4], ",", "."))
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("%w: bad CNB rate %q for %s", apperrors.ErrProviderFetch, fields[4], code)
		}
		if czkPerAmount.IsZero() {
			continue
		}
		// The fixing publishes "Amount code = czkPerAmount CZK", so
		// 1 CZK = Amount/czkPerAmount code. Multi-unit currencies are
		// handed out re-scaled to their published unit; the normalizer
		// divides the multiplier back out.
		perCZK := decimal.NewFromInt(amount).Div(czkPerAmount)
		if mult, ok := cnbMultiUnit[code]; ok {
			perCZK = perCZK.Mul(decimal.NewFromInt(mult))
		}
		quotes[code] = perCZK
	}
	return quotes, fixingDate, nil
}
