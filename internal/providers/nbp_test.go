package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nbpTableFixture = `[
	{
		"table": "A",
		"no": "003/A/NBP/2024",
		"effectiveDate": "2024-01-03",
		"rates": [
			{"currency": "dolar amerykański", "code": "USD", "mid": 3.9432},
			{"currency": "jen (Japonia)", "code": "JPY", "mid": 2.7591},
			{"currency": "euro", "code": "EUR", "mid": 4.3434}
		]
	},
	{
		"table": "A",
		"no": "004/A/NBP/2024",
		"effectiveDate": "2024-01-04",
		"rates": [
			{"currency": "dolar amerykański", "code": "USD", "mid": 3.9684}
		]
	}
]`

func TestNBP_FetchRates(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		fmt.Fprint(w, nbpTableFixture)
	}))
	defer server.Close()

	nbp := NewNBP(server.Client())
	nbp.baseURL = server.URL

	table, err := nbp.FetchRates(context.Background(), day(t, "2024-01-03"), day(t, "2024-01-04"), []string{"USD", "JPY"}, "PLN")
	require.NoError(t, err)
	assert.Equal(t, "/2024-01-03/2024-01-04/", requestedPath)

	require.Len(t, table, 2)

	// 1 USD = 3.9432 PLN, so 1 PLN = 1/3.9432 USD.
	wantUSD := decimal.NewFromInt(1).Div(decimal.RequireFromString("3.9432"))
	assert.True(t, table["2024-01-03"]["USD"].Equal(wantUSD))

	// JPY is quoted per 100 and stays in that unit: (100 / 2.7591) * 100.
	wantJPY := decimal.NewFromInt(100).Div(decimal.RequireFromString("2.7591")).Mul(decimal.NewFromInt(100))
	assert.True(t, table["2024-01-03"]["JPY"].Equal(wantJPY))

	_, hasEUR := table["2024-01-03"]["EUR"]
	assert.False(t, hasEUR)
}

func TestNBP_FetchRates_UnsupportedHome(t *testing.T) {
	nbp := NewNBP(http.DefaultClient)

	_, err := nbp.FetchRates(context.Background(), day(t, "2024-01-03"), day(t, "2024-01-04"), []string{"USD"}, "EUR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedBase))
}

func TestNBP_FetchRates_NotFoundRange(t *testing.T) {
	// The NBP API answers 404 for ranges with no published table.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	nbp := NewNBP(server.Client())
	nbp.baseURL = server.URL

	_, err := nbp.FetchRates(context.Background(), day(t, "2024-01-06"), day(t, "2024-01-07"), []string{"USD"}, "PLN")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderFetch))
}
