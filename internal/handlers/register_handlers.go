package handlers

import (
	"log/slog"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ratesworks/fx_rates_app/cmd/docs"
	portssvc "github.com/ratesworks/fx_rates_app/internal/core/ports/services"
	"github.com/ratesworks/fx_rates_app/internal/middleware"
	"github.com/ratesworks/fx_rates_app/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// registerCustomValidators wires the "currency" binding rule used by the
// request DTOs: a three-letter ISO 4217 style code.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return currencyCodePattern.MatchString(fl.Field().String())
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerProviderRoutes(v1, service.Provider)
	registerPairSourceRoutes(v1, service.PairSource)
	registerRateRoutes(v1, service.Rate)
	registerConversionRoutes(v1, service.Conversion)

	// Sync hits external provider APIs, so it gets its own rate limit.
	registerSyncRoutes(v1, service.Sync, syncRateLimiter(cfg))
}

// syncRateLimiter builds the per-IP limiter applied to the sync route.
func syncRateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.SyncRateLimit)
	if err != nil {
		slog.Warn("Invalid SYNC_RATE_LIMIT, defaulting to 10 per minute", slog.String("value", cfg.SyncRateLimit))
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
