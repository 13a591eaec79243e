package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	portssvc "github.com/ratesworks/fx_rates_app/internal/core/ports/services"
	"github.com/ratesworks/fx_rates_app/internal/middleware"
)

// providerHandler handles HTTP requests related to the provider catalogue.
type providerHandler struct {
	providerService portssvc.ProviderSvcFacade
}

func newProviderHandler(ps portssvc.ProviderSvcFacade) *providerHandler {
	return &providerHandler{providerService: ps}
}

// registerProviderRoutes registers routes related to providers.
func registerProviderRoutes(rg *gin.RouterGroup, providerService portssvc.ProviderSvcFacade) {
	h := newProviderHandler(providerService)

	providers := rg.Group("/providers")
	{
		providers.GET("", h.listProviders)
		providers.GET("/:code/currencies", h.listProviderCurrencies)
	}
}

// listProviders godoc
// @Summary List rate providers
// @Description Returns metadata for every registered rate provider
// @Tags providers
// @Produce json
// @Success 200 {array} domain.ProviderInfo
// @Router /providers [get]
func (h *providerHandler) listProviders(c *gin.Context) {
	c.JSON(http.StatusOK, h.providerService.ListProviders(c.Request.Context()))
}

// listProviderCurrencies godoc
// @Summary List currencies a provider supports
// @Description Returns the quote currencies one provider can deliver, sorted
// @Tags providers
// @Produce json
// @Param code path string true "Provider code"
// @Success 200 {array} string
// @Failure 404 {object} map[string]string "Provider not found"
// @Router /providers/{code}/currencies [get]
func (h *providerHandler) listProviderCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	code := c.Param("code")

	currencies, err := h.providerService.ListProviderCurrencies(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found: " + code})
			return
		}
		logger.Error("Failed to list provider currencies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list provider currencies"})
		return
	}
	c.JSON(http.StatusOK, currencies)
}
