package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	portssvc "github.com/ratesworks/fx_rates_app/internal/core/ports/services"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/ratesworks/fx_rates_app/internal/middleware"
)

// pairSourceHandler handles HTTP requests related to routing configuration.
type pairSourceHandler struct {
	pairSourceService portssvc.PairSourceSvcFacade
}

func newPairSourceHandler(pss portssvc.PairSourceSvcFacade) *pairSourceHandler {
	return &pairSourceHandler{pairSourceService: pss}
}

// registerPairSourceRoutes registers routes related to pair sources.
func registerPairSourceRoutes(rg *gin.RouterGroup, pairSourceService portssvc.PairSourceSvcFacade) {
	h := newPairSourceHandler(pairSourceService)

	pairSources := rg.Group("/pair-sources")
	{
		pairSources.GET("", h.listPairSources)
		pairSources.PUT("", h.upsertPairSources)
		pairSources.DELETE("", h.deletePairSources)
	}
}

// listPairSources godoc
// @Summary List configured pair sources
// @Description Returns routing configuration, optionally filtered by base, quote or provider
// @Tags pair sources
// @Produce json
// @Param base query string false "Base currency code"
// @Param quote query string false "Quote currency code"
// @Param provider query string false "Provider code"
// @Success 200 {array} dto.PairSourceResponse
// @Failure 500 {object} map[string]string "Failed to list pair sources"
// @Router /pair-sources [get]
func (h *pairSourceHandler) listPairSources(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	filter := domain.PairSourceFilter{
		BaseCode:     c.Query("base"),
		QuoteCode:    c.Query("quote"),
		ProviderCode: c.Query("provider"),
	}

	sources, err := h.pairSourceService.ListPairSources(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list pair sources", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pair sources"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListPairSourceResponse(sources))
}

// upsertPairSources godoc
// @Summary Upsert pair sources
// @Description Inserts or updates routing configuration as one atomic batch
// @Tags pair sources
// @Accept json
// @Produce json
// @Param request body dto.UpsertPairSourcesRequest true "Pair sources to upsert"
// @Success 200 {array} dto.PairSourceResult
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to upsert pair sources"
// @Router /pair-sources [put]
func (h *pairSourceHandler) upsertPairSources(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.UpsertPairSourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertPairSources", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	results, err := h.pairSourceService.UpsertPairSources(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error upserting pair sources", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert pair sources", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert pair sources"})
		}
		return
	}

	logger.Info("Pair sources upserted", slog.Int("count", len(results)))
	c.JSON(http.StatusOK, results)
}

// deletePairSources godoc
// @Summary Delete pair sources
// @Description Removes routing configuration per item; missing targets yield warnings, not errors
// @Tags pair sources
// @Accept json
// @Produce json
// @Param request body dto.DeletePairSourcesRequest true "Pair sources to delete"
// @Success 200 {array} dto.PairSourceResult
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 500 {object} map[string]string "Failed to delete pair sources"
// @Router /pair-sources [delete]
func (h *pairSourceHandler) deletePairSources(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.DeletePairSourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeletePairSources", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	results, err := h.pairSourceService.DeletePairSources(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to delete pair sources", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pair sources"})
		return
	}
	c.JSON(http.StatusOK, results)
}
