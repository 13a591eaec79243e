package services_test

import (
	"context"
	"testing"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/ratesworks/fx_rates_app/internal/core/services"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/ratesworks/fx_rates_app/internal/providers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PairSourceServiceTestSuite struct {
	suite.Suite
	mockPairRepo *MockPairSourceRepository
	service      *services.PairSourceService
}

func (s *PairSourceServiceTestSuite) SetupTest() {
	s.mockPairRepo = new(MockPairSourceRepository)
	registry, err := providers.NewRegistry(
		&stubProvider{code: "ecb", homes: []string{"EUR"}, supported: []string{"USD", "CZK"}},
		&stubProvider{code: "cnb", homes: []string{"CZK"}, supported: []string{"EUR", "USD"}},
	)
	s.Require().NoError(err)
	s.service = services.NewPairSourceService(s.mockPairRepo, registry)
}

func (s *PairSourceServiceTestSuite) TestUpsertPairSources_Success() {
	s.mockPairRepo.On("FindPairSourcesByKeys", mock.Anything, mock.Anything).
		Return([]domain.PairSource{}, nil).Once()
	s.mockPairRepo.On("UpsertPairSources", mock.Anything, mock.MatchedBy(func(items []domain.PairSource) bool {
		return len(items) == 2 && items[0].BaseCode == "EUR" && items[1].BaseCode == "CZK"
	})).Return(nil).Once()

	results, err := s.service.UpsertPairSources(context.Background(), dto.UpsertPairSourcesRequest{
		Items: []dto.PairSourceItem{
			{BaseCode: "eur", QuoteCode: "usd", ProviderCode: "ecb", Priority: 1},
			{BaseCode: "czk", QuoteCode: "usd", ProviderCode: "cnb", Priority: 1},
		},
	})

	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("upserted", results[0].Status)
	s.Equal("EUR", results[0].BaseCode)
	s.mockPairRepo.AssertExpectations(s.T())
}

func (s *PairSourceServiceTestSuite) TestUpsertPairSources_SamePairSameQuote() {
	_, err := s.service.UpsertPairSources(context.Background(), dto.UpsertPairSourcesRequest{
		Items: []dto.PairSourceItem{
			{BaseCode: "EUR", QuoteCode: "EUR", ProviderCode: "ecb", Priority: 1},
		},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPairRepo.AssertNotCalled(s.T(), "UpsertPairSources", mock.Anything, mock.Anything)
}

func (s *PairSourceServiceTestSuite) TestUpsertPairSources_UnknownProvider() {
	_, err := s.service.UpsertPairSources(context.Background(), dto.UpsertPairSourcesRequest{
		Items: []dto.PairSourceItem{
			{BaseCode: "EUR", QuoteCode: "USD", ProviderCode: "imaginary", Priority: 1},
		},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PairSourceServiceTestSuite) TestUpsertPairSources_IntraBatchCollision() {
	_, err := s.service.UpsertPairSources(context.Background(), dto.UpsertPairSourcesRequest{
		Items: []dto.PairSourceItem{
			{BaseCode: "EUR", QuoteCode: "USD", ProviderCode: "ecb", Priority: 1},
			{BaseCode: "EUR", QuoteCode: "USD", ProviderCode: "cnb", Priority: 1},
		},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPairRepo.AssertNotCalled(s.T(), "FindPairSourcesByKeys", mock.Anything, mock.Anything)
}

func (s *PairSourceServiceTestSuite) TestUpsertPairSources_InversePairsAreIndependent() {
	s.mockPairRepo.On("FindPairSourcesByKeys", mock.Anything, mock.Anything).
		Return([]domain.PairSource{}, nil).Once()
	s.mockPairRepo.On("UpsertPairSources", mock.Anything, mock.Anything).Return(nil).Once()

	results, err := s.service.UpsertPairSources(context.Background(), dto.UpsertPairSourcesRequest{
		Items: []dto.PairSourceItem{
			{BaseCode: "EUR", QuoteCode: "CZK", ProviderCode: "ecb", Priority: 1},
			{BaseCode: "CZK", QuoteCode: "EUR", ProviderCode: "cnb", Priority: 1},
		},
	})

	s.Require().NoError(err)
	s.Len(results, 2)
}

func (s *PairSourceServiceTestSuite) TestUpsertPairSources_StoredProviderCollisionRejectsBatch() {
	s.mockPairRepo.On("FindPairSourcesByKeys", mock.Anything, mock.Anything).
		Return([]domain.PairSource{
			{BaseCode: "EUR", QuoteCode: "USD", ProviderCode: "cnb", Priority: 1},
		}, nil).Once()

	_, err := s.service.UpsertPairSources(context.Background(), dto.UpsertPairSourcesRequest{
		Items: []dto.PairSourceItem{
			{BaseCode: "EUR", QuoteCode: "USD", ProviderCode: "ecb", Priority: 1},
			{BaseCode: "CZK", QuoteCode: "USD", ProviderCode: "cnb", Priority: 1},
		},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPairRepo.AssertNotCalled(s.T(), "UpsertPairSources", mock.Anything, mock.Anything)
}

func (s *PairSourceServiceTestSuite) TestUpsertPairSources_SameProviderReupsertIsAllowed() {
	s.mockPairRepo.On("FindPairSourcesByKeys", mock.Anything, mock.Anything).
		Return([]domain.PairSource{
			{BaseCode: "EUR", QuoteCode: "USD", ProviderCode: "ecb", Priority: 1},
		}, nil).Once()
	s.mockPairRepo.On("UpsertPairSources", mock.Anything, mock.Anything).Return(nil).Once()

	results, err := s.service.UpsertPairSources(context.Background(), dto.UpsertPairSourcesRequest{
		Items: []dto.PairSourceItem{
			{BaseCode: "EUR", QuoteCode: "USD", ProviderCode: "ecb", Priority: 1},
		},
	})

	s.Require().NoError(err)
	s.Len(results, 1)
}

func (s *PairSourceServiceTestSuite) TestDeletePairSources_MissingTargetWarns() {
	s.mockPairRepo.On("DeletePairSources", mock.Anything, "EUR", "USD", "").
		Return(0, nil).Once()
	s.mockPairRepo.On("DeletePairSources", mock.Anything, "CZK", "USD", "cnb").
		Return(2, nil).Once()

	results, err := s.service.DeletePairSources(context.Background(), dto.DeletePairSourcesRequest{
		Items: []dto.DeletePairSourceItem{
			{BaseCode: "EUR", QuoteCode: "USD"},
			{BaseCode: "CZK", QuoteCode: "USD", ProviderCode: "cnb"},
		},
	})

	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.NotEmpty(results[0].Warning)
	s.Empty(results[1].Warning)
	s.Equal("deleted", results[1].Status)
}

func TestPairSourceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PairSourceServiceTestSuite))
}
