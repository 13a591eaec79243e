package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const bocObservationsURL = "https://www.bankofcanada.ca/valet/observations/group/FX_RATES_DAILY/json"

var bocCurrencies = []string{
	"AUD", "BRL", "CHF", "CNY", "EUR", "GBP", "HKD", "IDR", "INR", "JPY",
	"KRW", "MXN", "NOK", "NZD", "PEN", "RUB", "SAR", "SEK", "SGD", "TRY",
	"TWD", "USD", "VND", "ZAR",
}

// BOC fetches the Bank of Canada Valet daily FX observations. Series are
// named FX<CUR>CAD and quote CAD per 1 unit of the foreign currency.
type BOC struct {
	client  *http.Client
	baseURL string
}

// NewBOC creates the BOC provider.
func NewBOC(client *http.Client) *BOC {
	return &BOC{client: client, baseURL: bocObservationsURL}
}

func (b *BOC) Code() string { return "boc" }

func (b *BOC) Name() string { return "Bank of Canada" }

func (b *BOC) HomeCurrencies() []string { return []string{"CAD"} }

func (b *BOC) SupportedCurrencies() []string { return bocCurrencies }

func (b *BOC) MultiUnitCurrencies() map[string]int64 { return nil }

type bocResponse struct {
	Observations []map[string]json.RawMessage `json:"observations"`
}

type bocValue struct {
	V decimal.Decimal `json:"v"`
}

// FetchRates requests the daily observations for [start, end]. Days the
// bank does not publish (weekends, holidays) are absent from the response.
func (b *BOC) FetchRates(ctx context.Context, start, end time.Time, currencies []string, home string) (domain.RateTable, error) {
	if err := checkHome(b, home); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?start_date=%s&end_date=%s", b.baseURL, domain.DayKey(start), domain.DayKey(end))
	body, err := fetchBody(ctx, b.client, url)
	if err != nil {
		return nil, err
	}

	var resp bocResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding BOC observations: %v", apperrors.ErrProviderFetch, err)
	}

	wanted := currencySet(currencies)
	table := make(domain.RateTable)
	for _, obs := range resp.Observations {
		rawDate, ok := obs["d"]
		if !ok {
			continue
		}
		var dayStr string
		if err := json.Unmarshal(rawDate, &dayStr); err != nil {
			return nil, fmt.Errorf("%w: bad BOC observation date: %v", apperrors.ErrProviderFetch, err)
		}
		date, err := domain.ParseDay(dayStr)
		if err != nil {
			return nil, fmt.Errorf("%w: bad BOC observation date %q: %v", apperrors.ErrProviderFetch, dayStr, err)
		}

		quotes := make(map[string]decimal.Decimal)
		for series, raw := range obs {
			code, ok := bocSeriesCurrency(series)
			if !ok || !wanted[code] {
				continue
			}
			var v bocValue
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("%w: bad BOC value for %s on %s: %v", apperrors.ErrProviderFetch, series, dayStr, err)
			}
			if v.V.IsZero() {
				continue
			}
			// The series quotes "1 code = v CAD"; invert for "1 CAD = X code".
			quotes[code] = decimal.NewFromInt(1).Div(v.V)
		}
		if len(quotes) > 0 {
			table[domain.DayKey(date)] = quotes
		}
	}
	return table, nil
}

// bocSeriesCurrency extracts the foreign currency from an FX<CUR>CAD series
// name.
func bocSeriesCurrency(series string) (string, bool) {
	if len(series) != 8 || !strings.HasPrefix(series, "FX") || !strings.HasSuffix(series, "CAD") {
		return "", false
	}
	return series[2:5], true
}
