package providers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
)

// Registry is the static provider catalogue, assembled once during
// bootstrap. It is read-only after construction and safe for concurrent
// reads; no provider is registered through import side effects.
type Registry struct {
	codes  []string
	byCode map[string]Provider
}

// NewRegistry builds a registry from explicitly constructed providers.
// Duplicate codes are a wiring bug and fail construction.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{byCode: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if _, exists := r.byCode[p.Code()]; exists {
			return nil, fmt.Errorf("%w: provider code %q registered twice", apperrors.ErrDuplicate, p.Code())
		}
		r.byCode[p.Code()] = p
		r.codes = append(r.codes, p.Code())
	}
	sort.Strings(r.codes)
	return r, nil
}

// NewDefaultRegistry builds the catalogue of all shipped providers. The
// HTTP client carries the caller-configured fetch timeout.
func NewDefaultRegistry(client *http.Client) (*Registry, error) {
	return NewRegistry(
		NewECB(client),
		NewCNB(client),
		NewNBP(client),
		NewBOC(client),
	)
}

// Get returns the provider registered under code.
func (r *Registry) Get(code string) (Provider, error) {
	p, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrNotFound, code)
	}
	return p, nil
}

// List returns all providers in stable code order.
func (r *Registry) List() []Provider {
	out := make([]Provider, 0, len(r.codes))
	for _, code := range r.codes {
		out = append(out, r.byCode[code])
	}
	return out
}

// InfoOf extracts the serializable metadata for one provider.
func InfoOf(p Provider) domain.ProviderInfo {
	multi := make([]string, 0, len(p.MultiUnitCurrencies()))
	for code := range p.MultiUnitCurrencies() {
		multi = append(multi, code)
	}
	sort.Strings(multi)
	return domain.ProviderInfo{
		Code:                p.Code(),
		Name:                p.Name(),
		HomeCurrencies:      p.HomeCurrencies(),
		SupportedCurrencies: p.SupportedCurrencies(),
		MultiUnitCurrencies: multi,
	}
}
