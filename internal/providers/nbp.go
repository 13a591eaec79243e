package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const nbpTableAURL = "https://api.nbp.pl/api/exchangerates/tables/a"

var nbpCurrencies = []string{
	"AUD", "BGN", "BRL", "CAD", "CHF", "CLP", "CNY", "CZK", "DKK", "EUR",
	"GBP", "HKD", "HUF", "IDR", "ILS", "INR", "ISK", "JPY", "KRW", "MXN",
	"MYR", "NOK", "NZD", "PHP", "RON", "SEK", "SGD", "THB", "TRY", "UAH",
	"USD", "XDR", "ZAR",
}

// nbpMultiUnit lists the currencies table A quotes per 100 or per 10000
// units of the foreign currency.
var nbpMultiUnit = map[string]int64{
	"CLP": 100,
	"HUF": 100,
	"IDR": 10000,
	"ISK": 100,
	"JPY": 100,
	"KRW": 100,
}

// NBP fetches National Bank of Poland table A mid rates over a date range
// in a single JSON request. Published mids are PLN per N units of the
// foreign currency.
type NBP struct {
	client  *http.Client
	baseURL string
}

// NewNBP creates the NBP provider.
func NewNBP(client *http.Client) *NBP {
	return &NBP{client: client, baseURL: nbpTableAURL}
}

func (n *NBP) Code() string { return "nbp" }

func (n *NBP) Name() string { return "National Bank of Poland" }

func (n *NBP) HomeCurrencies() []string { return []string{"PLN"} }

func (n *NBP) SupportedCurrencies() []string { return nbpCurrencies }

func (n *NBP) MultiUnitCurrencies() map[string]int64 { return nbpMultiUnit }

type nbpTable struct {
	EffectiveDate string `json:"effectiveDate"`
	Rates         []struct {
		Code string          `json:"code"`
		Mid  decimal.Decimal `json:"mid"`
	} `json:"rates"`
}

// FetchRates requests the table A series for [start, end]. Days without a
// published table (weekends, holidays) are absent from the response and
// therefore omitted from the result.
func (n *NBP) FetchRates(ctx context.Context, start, end time.Time, currencies []string, home string) (domain.RateTable, error) {
	if err := checkHome(n, home); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/%s/?format=json", n.baseURL, domain.DayKey(start), domain.DayKey(end))
	body, err := fetchBody(ctx, n.client, url)
	if err != nil {
		return nil, err
	}

	var tables []nbpTable
	if err := json.Unmarshal(body, &tables); err != nil {
		return nil, fmt.Errorf("%w: decoding NBP table A: %v", apperrors.ErrProviderFetch, err)
	}

	wanted := currencySet(currencies)
	table := make(domain.RateTable)
	for _, t := range tables {
		date, err := domain.ParseDay(t.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad NBP effective date %q: %v", apperrors.ErrProviderFetch, t.EffectiveDate, err)
		}
		quotes := make(map[string]decimal.Decimal)
		for _, r := range t.Rates {
			code := domain.NormalizeCode(r.Code)
			if !wanted[code] || r.Mid.IsZero() {
				continue
			}
			// mid is "N code = mid PLN", so 1 PLN = N/mid code. Multi-unit
			// currencies stay in their published unit; the normalizer
			// divides the multiplier back out.
			units := int64(1)
			if mult, ok := nbpMultiUnit[code]; ok {
				units = mult
			}
			perPLN := decimal.NewFromInt(units).Div(r.Mid)
			if units > 1 {
				perPLN = perPLN.Mul(decimal.NewFromInt(units))
			}
			quotes[code] = perPLN
		}
		if len(quotes) > 0 {
			table[domain.DayKey(date)] = quotes
		}
	}
	return table, nil
}
