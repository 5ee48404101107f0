package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/api/handler"
	"github.com/prospectius/crm-backend/internal/api/middleware"
	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
	"github.com/prospectius/crm-backend/internal/core/service"
	"github.com/prospectius/crm-backend/internal/infrastructure/config"
	"github.com/prospectius/crm-backend/internal/infrastructure/db/mysql"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when the throttle cache is disabled.
func NewRouter(
	cfg *config.Config,
	pool *mysql.Pool,
	rdb *goredis.Client,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("prospectius"))

	// --- Dependencies ---
	exec := mysql.NewExecutor(pool)
	accountRepo := mysql.NewAccountRepository(exec)
	prospectRepo := mysql.NewProspectRepository(pool, exec)
	interactionRepo := mysql.NewInteractionRepository(pool, exec)
	reportRepo := mysql.NewReportRepository(exec)

	credentials := service.NewCredentialService()
	accountService := service.NewAccountService(accountRepo, credentials, throttle, cfg.JWTSecret, cfg.TokenTTL, log)
	prospectService := service.NewProspectService(prospectRepo, log)
	interactionService := service.NewInteractionService(interactionRepo, prospectRepo, cfg.RecomputeProspectTimestamp, log)
	reportingService := service.NewReportingService(reportRepo, log)

	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	prospectHandler := handler.NewProspectHandler(prospectService)
	interactionHandler := handler.NewInteractionHandler(interactionService)
	reportHandler := handler.NewReportHandler(reportingService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdministrateur))

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Versioned API (JWT required) ---
	v1 := e.Group("/v1", authMiddleware)

	accounts := v1.Group("/accounts", adminOnly)
	accounts.POST("", accountHandler.Create)
	accounts.GET("", accountHandler.List)
	accounts.GET("/:id", accountHandler.Get)
	accounts.PATCH("/:id", accountHandler.Update)
	accounts.PUT("/:id/password", accountHandler.UpdatePassword)
	accounts.DELETE("/:id", accountHandler.Delete)

	prospects := v1.Group("/prospects")
	prospects.POST("", prospectHandler.Create)
	prospects.GET("", prospectHandler.List)
	prospects.GET("/:id", prospectHandler.Get)
	prospects.PATCH("/:id", prospectHandler.Update)
	prospects.DELETE("/:id", prospectHandler.Delete)
	prospects.POST("/:id/interactions", interactionHandler.Create)
	prospects.GET("/:id/interactions", interactionHandler.List)

	v1.DELETE("/interactions/:id", interactionHandler.Delete)

	reports := v1.Group("/reports", adminOnly)
	reports.GET("/status-distribution", reportHandler.StatusDistribution)
	reports.GET("/conversion-rate", reportHandler.ConversionRate)
	reports.GET("/user-performance", reportHandler.UserPerformance)
	reports.GET("/created-by-month", reportHandler.CreatedByMonth)

	return e
}
