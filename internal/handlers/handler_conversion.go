package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	portssvc "github.com/ratesworks/fx_rates_app/internal/core/ports/services"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/ratesworks/fx_rates_app/internal/middleware"
)

// conversionHandler handles HTTP requests for currency conversion.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// registerConversionRoutes registers routes related to conversion.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	rg.POST("/convert", h.convert)
	rg.POST("/convert/bulk", h.convertBulk)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts using the most recent stored rate at or before the requested date. The backward scan has no lookback limit; the inverse pair's reciprocal is used when the direct rate is missing.
// @Tags conversion
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "Conversion parameters"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "No rate available in either direction"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Router /convert [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	conversion, err := h.conversionService.Convert(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error converting", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNoRateAvailable):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to convert", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(conversion))
}

// convertBulk godoc
// @Summary Convert multiple amounts
// @Description Processes conversion requests independently; one item's failure never aborts the batch. Items with an end date expand into one conversion per day.
// @Tags conversion
// @Accept json
// @Produce json
// @Param request body dto.ConvertBulkRequest true "Conversion requests"
// @Success 200 {array} dto.ConversionOutcome
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Router /convert/bulk [post]
func (h *conversionHandler) convertBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.ConvertBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	outcomes, err := h.conversionService.ConvertBulk(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to convert bulk", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		return
	}
	c.JSON(http.StatusOK, outcomes)
}
