package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
)

// Provider is the contract every rate source implements in full. Capability
// is a compile-time contract: single-base providers return one home
// currency, providers without multi-unit quotes return an empty map.
type Provider interface {
	// Code is the short unique identifier the registry and pair-source
	// configuration refer to.
	Code() string

	// Name is the human-readable display name.
	Name() string

	// HomeCurrencies lists the currencies this provider can quote against.
	HomeCurrencies() []string

	// SupportedCurrencies lists the currencies this provider can quote
	// against its home currency.
	SupportedCurrencies() []string

	// MultiUnitCurrencies maps currencies whose natural market quote is per
	// N units (e.g. per 100) to that unit multiplier. Quotes for these
	// currencies are returned as published; the normalizer rescales them.
	MultiUnitCurrencies() map[string]int64

	// FetchRates returns quotes "1 home = X currency" for the requested
	// currencies over [start, end]. Days without a published fixing are
	// omitted from the result, never an error. home must be one of
	// HomeCurrencies; otherwise the call fails wrapping
	// apperrors.ErrUnsupportedBase. Network and parse failures wrap
	// apperrors.ErrProviderFetch.
	FetchRates(ctx context.Context, start, end time.Time, currencies []string, home string) (domain.RateTable, error)
}

// SupportsHome reports whether home is one of the provider's home currencies.
func SupportsHome(p Provider, home string) bool {
	for _, h := range p.HomeCurrencies() {
		if h == home {
			return true
		}
	}
	return false
}

// checkHome validates a requested home currency against the provider's set.
func checkHome(p Provider, home string) error {
	if !SupportsHome(p, home) {
		return fmt.Errorf("%w: provider %s cannot quote against %s", apperrors.ErrUnsupportedBase, p.Code(), home)
	}
	return nil
}

// fetchBody issues a GET and returns the response body, mapping transport
// and status failures to ErrProviderFetch so the orchestrator can fall back.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrProviderFetch, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", apperrors.ErrProviderFetch, resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrProviderFetch, err)
	}
	return body, nil
}

// currencySet builds a membership set from the requested currency list.
func currencySet(currencies []string) map[string]bool {
	set := make(map[string]bool, len(currencies))
	for _, c := range currencies {
		set[domain.NormalizeCode(c)] = true
	}
	return set
}
