package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	portssvc "github.com/ratesworks/fx_rates_app/internal/core/ports/services"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/ratesworks/fx_rates_app/internal/middleware"
)

// rateHandler handles HTTP requests for stored rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to stored rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rg.GET("/rates", h.listRates)
	rg.DELETE("/rates", h.deleteRates)
}

// listRates godoc
// @Summary List stored rates
// @Description Returns stored rates, newest first, with offset pagination
// @Tags rates
// @Produce json
// @Param base query string false "Base currency code"
// @Param quote query string false "Quote currency code"
// @Param source query string false "Provider code that produced the rate"
// @Param from query string false "Earliest rate date (YYYY-MM-DD)"
// @Param to query string false "Latest rate date (YYYY-MM-DD)"
// @Param page query int false "Page number, starting at 1"
// @Param pageSize query int false "Rows per page"
// @Success 200 {object} dto.ListRatesResponse
// @Failure 400 {object} map[string]string "Invalid date filter"
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	filter := domain.RateFilter{
		BaseCode:  c.Query("base"),
		QuoteCode: c.Query("quote"),
		Source:    c.Query("source"),
	}
	if from := c.Query("from"); from != "" {
		t, err := domain.ParseDay(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date: " + from})
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := domain.ParseDay(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date: " + to})
			return
		}
		filter.To = &t
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	rates, total, err := h.rateService.ListRates(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListRatesResponse(rates, total, page, pageSize))
}

// deleteRates godoc
// @Summary Delete stored rates
// @Description Removes stored rates per item. A structurally invalid item rejects the whole request before any row is touched; after that items are independent and missing targets yield warnings.
// @Tags rates
// @Accept json
// @Produce json
// @Param request body dto.DeleteRatesRequest true "Deletion targets"
// @Success 200 {array} dto.DeleteRatesResult
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to delete rates"
// @Router /rates [delete]
func (h *rateHandler) deleteRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.DeleteRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeleteRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deletions, err := h.rateService.DeleteRates(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error deleting rates", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to delete rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rates"})
		return
	}

	results := make([]dto.DeleteRatesResult, len(deletions))
	for i, d := range deletions {
		results[i] = dto.ToDeleteRatesResult(d)
	}
	c.JSON(http.StatusOK, results)
}
