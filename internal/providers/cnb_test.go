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

func cnbFixture(header string) string {
	return header + "\n" +
		"Country|Currency|Amount|Code|Rate\n" +
		"Australia|dollar|1|AUD|15.233\n" +
		"Japan|yen|100|JPY|15.651\n" +
		"EMU|euro|1|EUR|25.035\n"
}

func TestCNB_FetchRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("date") {
		case "03.01.2024":
			fmt.Fprint(w, cnbFixture("03 Jan 2024 #2"))
		case "04.01.2024":
			fmt.Fprint(w, cnbFixture("04 Jan 2024 #3"))
		default:
			// Weekend behaviour: the CNB answers with the last fixing.
			fmt.Fprint(w, cnbFixture("04 Jan 2024 #3"))
		}
	}))
	defer server.Close()

	cnb := NewCNB(server.Client())
	cnb.baseURL = server.URL

	table, err := cnb.FetchRates(context.Background(), day(t, "2024-01-03"), day(t, "2024-01-06"), []string{"AUD", "JPY"}, "CZK")
	require.NoError(t, err)

	// The 5th and 6th replay the fixing of the 4th and must be skipped.
	require.Len(t, table, 2)

	// 1 AUD = 15.233 CZK, so 1 CZK = 1/15.233 AUD.
	wantAUD := decimal.NewFromInt(1).Div(decimal.RequireFromString("15.233"))
	assert.True(t, table["2024-01-03"]["AUD"].Equal(wantAUD))

	// 100 JPY = 15.651 CZK. The quote stays in the published per-100 unit:
	// (100 / 15.651) * 100.
	wantJPY := decimal.NewFromInt(100).Div(decimal.RequireFromString("15.651")).Mul(decimal.NewFromInt(100))
	assert.True(t, table["2024-01-04"]["JPY"].Equal(wantJPY))

	// EUR was not requested.
	_, hasEUR := table["2024-01-03"]["EUR"]
	assert.False(t, hasEUR)
}

func TestCNB_FetchRates_UnsupportedHome(t *testing.T) {
	cnb := NewCNB(http.DefaultClient)

	_, err := cnb.FetchRates(context.Background(), day(t, "2024-01-03"), day(t, "2024-01-03"), []string{"EUR"}, "EUR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedBase))
}

func TestCNB_FetchRates_TruncatedFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "03 Jan 2024 #2")
	}))
	defer server.Close()

	cnb := NewCNB(server.Client())
	cnb.baseURL = server.URL

	_, err := cnb.FetchRates(context.Background(), day(t, "2024-01-03"), day(t, "2024-01-03"), []string{"AUD"}, "CZK")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderFetch))
}

func TestParseCNBFixing_BadAmount(t *testing.T) {
	body := "03 Jan 2024 #2\n" +
		"Country|Currency|Amount|Code|Rate\n" +
		"Japan|yen|zero|JPY|15.651\n"

	_, _, err := parseCNBFixing(body, map[string]bool{"JPY": true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderFetch))
}
