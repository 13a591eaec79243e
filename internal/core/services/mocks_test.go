package services_test

import (
	"context"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateRepository ---

type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindRatesInRange(ctx context.Context, pairs []domain.PairKey, start, end time.Time) (map[domain.RateKey]domain.ExchangeRate, error) {
	args := m.Called(ctx, pairs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RateKey]domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) FindRateOnOrBefore(ctx context.Context, base, quote string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, base, quote, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) ListRates(ctx context.Context, filter domain.RateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockRateRepository) UpsertRates(ctx context.Context, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRateRepository) DeleteRatesInRange(ctx context.Context, base, quote string, start, end time.Time) (int, int, error) {
	args := m.Called(ctx, base, quote, start, end)
	return args.Int(0), args.Int(1), args.Error(2)
}

// --- Mock PairSourceRepository ---

type MockPairSourceRepository struct {
	mock.Mock
}

func (m *MockPairSourceRepository) ListPairSources(ctx context.Context, filter domain.PairSourceFilter) ([]domain.PairSource, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PairSource), args.Error(1)
}

func (m *MockPairSourceRepository) FindPairSourcesByKeys(ctx context.Context, keys []domain.PairSourceKey) ([]domain.PairSource, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PairSource), args.Error(1)
}

func (m *MockPairSourceRepository) ListPairSourcesForQuotes(ctx context.Context, quotes []string) ([]domain.PairSource, error) {
	args := m.Called(ctx, quotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PairSource), args.Error(1)
}

func (m *MockPairSourceRepository) UpsertPairSources(ctx context.Context, items []domain.PairSource) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockPairSourceRepository) DeletePairSources(ctx context.Context, base, quote, providerCode string) (int, error) {
	args := m.Called(ctx, base, quote, providerCode)
	return args.Int(0), args.Error(1)
}

// --- Stub provider ---

// stubProvider is a scriptable provider for orchestration tests.
type stubProvider struct {
	code      string
	homes     []string
	supported []string
	multiUnit map[string]int64
	fetch     func(ctx context.Context, start, end time.Time, currencies []string, home string) (domain.RateTable, error)
	calls     int
}

func (s *stubProvider) Code() string { return s.code }

func (s *stubProvider) Name() string { return "Stub " + s.code }

func (s *stubProvider) HomeCurrencies() []string { return s.homes }

func (s *stubProvider) SupportedCurrencies() []string { return s.supported }

func (s *stubProvider) MultiUnitCurrencies() map[string]int64 { return s.multiUnit }

func (s *stubProvider) FetchRates(ctx context.Context, start, end time.Time, currencies []string, home string) (domain.RateTable, error) {
	s.calls++
	return s.fetch(ctx, start, end, currencies, home)
}
