package providers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultRegistry(t *testing.T) {
	registry, err := NewDefaultRegistry(http.DefaultClient)
	require.NoError(t, err)

	codes := make([]string, 0)
	for _, p := range registry.List() {
		codes = append(codes, p.Code())
	}
	assert.Equal(t, []string{"boc", "cnb", "ecb", "nbp"}, codes)
}

func TestRegistry_Get(t *testing.T) {
	registry, err := NewDefaultRegistry(http.DefaultClient)
	require.NoError(t, err)

	p, err := registry.Get("ecb")
	require.NoError(t, err)
	assert.Equal(t, "European Central Bank", p.Name())

	_, err = registry.Get("imaginary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestNewRegistry_DuplicateCode(t *testing.T) {
	_, err := NewRegistry(NewECB(http.DefaultClient), NewECB(http.DefaultClient))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
}

func TestInfoOf(t *testing.T) {
	info := InfoOf(NewCNB(http.DefaultClient))

	assert.Equal(t, "cnb", info.Code)
	assert.Equal(t, []string{"CZK"}, info.HomeCurrencies)
	assert.Contains(t, info.SupportedCurrencies, "JPY")
	assert.Equal(t, []string{"HUF", "IDR", "INR", "ISK", "JPY", "KRW", "PHP", "THB"}, info.MultiUnitCurrencies)
}
