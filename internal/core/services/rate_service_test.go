package services_test

import (
	"context"
	"testing"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/ratesworks/fx_rates_app/internal/core/services"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockRateRepository
	service      *services.RateService
}

func (s *RateServiceTestSuite) SetupTest() {
	s.mockRateRepo = new(MockRateRepository)
	s.service = services.NewRateService(s.mockRateRepo)
}

func (s *RateServiceTestSuite) TestListRates_PaginationDefaults() {
	s.mockRateRepo.On("ListRates", mock.Anything, mock.Anything, 1, 50).
		Return([]domain.ExchangeRate{}, 0, nil).Once()

	_, _, err := s.service.ListRates(context.Background(), domain.RateFilter{}, 0, 0)

	s.Require().NoError(err)
	s.mockRateRepo.AssertExpectations(s.T())
}

func (s *RateServiceTestSuite) TestListRates_PageSizeCeiling() {
	s.mockRateRepo.On("ListRates", mock.Anything, mock.Anything, 3, 500).
		Return([]domain.ExchangeRate{}, 0, nil).Once()

	_, _, err := s.service.ListRates(context.Background(), domain.RateFilter{}, 3, 9999)

	s.Require().NoError(err)
	s.mockRateRepo.AssertExpectations(s.T())
}

func (s *RateServiceTestSuite) TestListRates_NormalizesFilterCodes() {
	s.mockRateRepo.On("ListRates", mock.Anything, mock.MatchedBy(func(f domain.RateFilter) bool {
		return f.BaseCode == "EUR" && f.QuoteCode == "USD"
	}), 1, 50).Return([]domain.ExchangeRate{}, 0, nil).Once()

	_, _, err := s.service.ListRates(context.Background(), domain.RateFilter{BaseCode: "eur", QuoteCode: "usd"}, 1, 0)

	s.Require().NoError(err)
	s.mockRateRepo.AssertExpectations(s.T())
}

func (s *RateServiceTestSuite) TestDeleteRates_MalformedItemRejectsWholeCall() {
	_, err := s.service.DeleteRates(context.Background(), dto.DeleteRatesRequest{
		Items: []dto.DeleteRatesItem{
			{BaseCode: "EUR", QuoteCode: "USD", StartDate: "2024-01-01"},
			{BaseCode: "EUR", QuoteCode: "USD", StartDate: "2024-01-05", EndDate: "2024-01-01"},
		},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRateRepo.AssertNotCalled(s.T(), "DeleteRatesInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RateServiceTestSuite) TestDeleteRates_SamePairRejected() {
	_, err := s.service.DeleteRates(context.Background(), dto.DeleteRatesRequest{
		Items: []dto.DeleteRatesItem{
			{BaseCode: "EUR", QuoteCode: "eur", StartDate: "2024-01-01"},
		},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RateServiceTestSuite) TestDeleteRates_MissingTargetWarnsAndContinues() {
	start, _ := domain.ParseDay("2024-01-01")
	end, _ := domain.ParseDay("2024-01-31")

	s.mockRateRepo.On("DeleteRatesInRange", mock.Anything, "EUR", "USD", start, end).
		Return(0, 0, nil).Once()
	s.mockRateRepo.On("DeleteRatesInRange", mock.Anything, "CZK", "USD", start, start).
		Return(3, 3, nil).Once()

	results, err := s.service.DeleteRates(context.Background(), dto.DeleteRatesRequest{
		Items: []dto.DeleteRatesItem{
			{BaseCode: "EUR", QuoteCode: "USD", StartDate: "2024-01-01", EndDate: "2024-01-31"},
			{BaseCode: "CZK", QuoteCode: "USD", StartDate: "2024-01-01"},
		},
	})

	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.NotEmpty(results[0].Warning)
	s.Equal(0, results[0].DeletedCount)
	s.Empty(results[1].Warning)
	s.Equal(3, results[1].DeletedCount)
}

func (s *RateServiceTestSuite) TestDeleteRates_RerunReportsZero() {
	start, _ := domain.ParseDay("2024-01-01")

	s.mockRateRepo.On("DeleteRatesInRange", mock.Anything, "EUR", "USD", start, start).
		Return(0, 0, nil).Once()

	results, err := s.service.DeleteRates(context.Background(), dto.DeleteRatesRequest{
		Items: []dto.DeleteRatesItem{
			{BaseCode: "EUR", QuoteCode: "USD", StartDate: "2024-01-01"},
		},
	})

	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(0, results[0].ExistingCount)
	s.Equal(0, results[0].DeletedCount)
	s.NotEmpty(results[0].Warning)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
