package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/ratesworks/fx_rates_app/internal/providers"
)

// ProviderService exposes the static provider registry to the API layer.
type ProviderService struct {
	registry *providers.Registry
}

// NewProviderService creates a new ProviderService.
func NewProviderService(registry *providers.Registry) *ProviderService {
	return &ProviderService{registry: registry}
}

// ListProviders returns metadata for every registered provider in stable
// code order.
func (s *ProviderService) ListProviders(ctx context.Context) []domain.ProviderInfo {
	all := s.registry.List()
	infos := make([]domain.ProviderInfo, len(all))
	for i, p := range all {
		infos[i] = providers.InfoOf(p)
	}
	return infos
}

// ListProviderCurrencies returns the quote currencies one provider supports,
// sorted.
func (s *ProviderService) ListProviderCurrencies(ctx context.Context, code string) ([]string, error) {
	p, err := s.registry.Get(code)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	currencies := append([]string(nil), p.SupportedCurrencies()...)
	sort.Strings(currencies)
	return currencies, nil
}
