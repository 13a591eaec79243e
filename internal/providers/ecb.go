package providers

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const ecbHistoryURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-hist-90d.xml"

var ecbCurrencies = []string{
	"AUD", "BGN", "BRL", "CAD", "CHF", "CNY", "CZK", "DKK", "GBP", "HKD",
	"HUF", "IDR", "ILS", "INR", "ISK", "JPY", "KRW", "MXN", "MYR", "NOK",
	"NZD", "PHP", "PLN", "RON", "SEK", "SGD", "THB", "TRY", "USD", "ZAR",
}

// ECB fetches the euro foreign exchange reference rates published by the
// European Central Bank (90-day history feed). All quotes are per 1 EUR.
type ECB struct {
	client  *http.Client
	baseURL string
}

// NewECB creates the ECB provider.
func NewECB(client *http.Client) *ECB {
	return &ECB{client: client, baseURL: ecbHistoryURL}
}

func (e *ECB) Code() string { return "ecb" }

func (e *ECB) Name() string { return "European Central Bank" }

func (e *ECB) HomeCurrencies() []string { return []string{"EUR"} }

func (e *ECB) SupportedCurrencies() []string { return ecbCurrencies }

func (e *ECB) MultiUnitCurrencies() map[string]int64 { return nil }

type ecbDay struct {
	Time  string `xml:"time,attr"`
	Rates []struct {
		Currency string `xml:"currency,attr"`
		Rate     string `xml:"rate,attr"`
	} `xml:"Cube"`
}

type ecbEnvelope struct {
	Days []ecbDay `xml:"Cube>Cube"`
}

// FetchRates parses the reference-rate history and keeps the requested
// currencies within [start, end]. Non-trading days simply do not appear in
// the feed and are omitted.
func (e *ECB) FetchRates(ctx context.Context, start, end time.Time, currencies []string, home string) (domain.RateTable, error) {
	if err := checkHome(e, home); err != nil {
		return nil, err
	}

	body, err := fetchBody(ctx, e.client, e.baseURL)
	if err != nil {
		return nil, err
	}

	var envelope ecbEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding ECB feed: %v", apperrors.ErrProviderFetch, err)
	}

	wanted := currencySet(currencies)
	table := make(domain.RateTable)
	for _, day := range envelope.Days {
		date, err := domain.ParseDay(day.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q in ECB feed: %v", apperrors.ErrProviderFetch, day.Time, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		quotes := make(map[string]decimal.Decimal)
		for _, r := range day.Rates {
			if !wanted[r.Currency] {
				continue
			}
			rate, err := decimal.NewFromString(r.Rate)
			if err != nil {
				return nil, fmt.Errorf("%w: bad rate %q for %s in ECB feed: %v", apperrors.ErrProviderFetch, r.Rate, r.Currency, err)
			}
			quotes[r.Currency] = rate
		}
		if len(quotes) > 0 {
			table[domain.DayKey(date)] = quotes
		}
	}
	return table, nil
}
