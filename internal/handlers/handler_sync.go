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

// syncHandler handles HTTP requests that trigger rate acquisition.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: ss}
}

// registerSyncRoutes registers the sync route. Extra middleware (rate
// limiting) is applied by the caller.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade, extra ...gin.HandlerFunc) {
	h := newSyncHandler(syncService)
	rg.POST("/rates/sync", append(extra, h.syncRates)...)
}

// syncRates godoc
// @Summary Sync exchange rates
// @Description Fetches, normalizes and stores rates for a date range. With providerCode the fetch is direct; without it each currency is routed through its configured pair sources with priority fallback.
// @Tags rates
// @Accept json
// @Produce json
// @Param request body dto.SyncRequest true "Sync parameters"
// @Success 200 {object} dto.SyncResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 422 {object} map[string]string "Provider does not support the requested home currency"
// @Failure 500 {object} map[string]string "Failed to sync rates"
// @Router /rates/sync [post]
func (h *syncHandler) syncRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SyncRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received sync request",
		slog.String("start", req.StartDate),
		slog.String("end", req.EndDate),
		slog.Int("currencies", len(req.Currencies)),
		slog.String("provider", req.ProviderCode),
	)

	result, err := h.syncService.Sync(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error syncing rates", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnsupportedBase):
			logger.Warn("Unsupported home currency for sync", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to sync rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync rates"})
		}
		return
	}

	logger.Info("Sync completed",
		slog.Int("synced", result.SyncedCount),
		slog.Int("errors", len(result.Errors)),
	)
	c.JSON(http.StatusOK, dto.ToSyncResponse(result))
}
