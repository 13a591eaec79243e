package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/services"
	"github.com/ratesworks/fx_rates_app/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderService_ListProviders(t *testing.T) {
	registry, err := providers.NewRegistry(
		&stubProvider{code: "ecb", homes: []string{"EUR"}, supported: []string{"USD"}},
		&stubProvider{code: "cnb", homes: []string{"CZK"}, supported: []string{"EUR"}},
	)
	require.NoError(t, err)
	svc := services.NewProviderService(registry)

	infos := svc.ListProviders(context.Background())

	require.Len(t, infos, 2)
	assert.Equal(t, "cnb", infos[0].Code)
	assert.Equal(t, "ecb", infos[1].Code)
}

func TestProviderService_ListProviderCurrencies(t *testing.T) {
	registry, err := providers.NewRegistry(
		&stubProvider{code: "ecb", homes: []string{"EUR"}, supported: []string{"USD", "CZK", "AUD"}},
	)
	require.NoError(t, err)
	svc := services.NewProviderService(registry)

	currencies, err := svc.ListProviderCurrencies(context.Background(), "ecb")
	require.NoError(t, err)
	assert.Equal(t, []string{"AUD", "CZK", "USD"}, currencies)

	_, err = svc.ListProviderCurrencies(context.Background(), "imaginary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
