package api

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/siccrm/crm-api/internal/api/handler"
	"github.com/siccrm/crm-api/internal/api/middleware"
	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/service"
	"github.com/siccrm/crm-api/internal/infrastructure/config"
	"github.com/siccrm/crm-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/siccrm/crm-api/internal/infrastructure/db/redis"
	"github.com/siccrm/crm-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *goredis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Repositories ---
	authRepo := postgres.NewAuthRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	interactionRepo := postgres.NewInteractionRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	opportunityRepo := postgres.NewOpportunityRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// --- Services ---
	authService := service.NewAuthService(authRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	contactService := service.NewContactService(contactRepo, log)
	interactionService := service.NewInteractionService(interactionRepo, log)
	sendLimiter := redisinfra.NewSendLimiter(rdb, cfg.Limits.MessagesPerMinute)
	messageService := service.NewMessageService(messageRepo, interactionRepo, sendLimiter, log)
	opportunityService := service.NewOpportunityService(opportunityRepo, log)
	statsService := service.NewStatsService(statsRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)
	interactionHandler := handler.NewInteractionHandler(interactionService)
	messageHandler := handler.NewMessageHandler(messageService)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService)
	statsHandler := handler.NewStatsHandler(statsService)

	authMW := middleware.Auth(cfg.Auth.JWTSecret)
	adminMW := middleware.RBAC(domain.RoleAdmin)
	authLimiter := middleware.NewIPRateLimiter(cfg.Limits.AuthPerMinute)

	// --- Auth routes (IP rate-limited, no token required) ---
	auth := e.Group("/api/auth", authLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Protected API routes ---
	apiGroup := e.Group("/api", authMW)

	contacts := apiGroup.Group("/contacts")
	contacts.GET("", contactHandler.List)
	contacts.POST("", contactHandler.Create)
	contacts.GET("/:id", contactHandler.Get)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete, adminMW)
	contacts.GET("/:id/interactions", contactHandler.Interactions)

	interactions := apiGroup.Group("/interactions")
	interactions.GET("", interactionHandler.List)
	interactions.POST("", interactionHandler.Create)
	interactions.GET("/:id", interactionHandler.Get)
	interactions.PUT("/:id", interactionHandler.Update)
	interactions.DELETE("/:id", interactionHandler.Delete)
	interactions.POST("/:id/participants", interactionHandler.AddParticipant)
	interactions.GET("/:id/messages", messageHandler.List)
	interactions.POST("/:id/messages", messageHandler.Send)

	opportunities := apiGroup.Group("/opportunities")
	opportunities.GET("", opportunityHandler.List)
	opportunities.POST("", opportunityHandler.Create)
	opportunities.GET("/pipeline", opportunityHandler.Pipeline)
	opportunities.GET("/:id", opportunityHandler.Get)
	opportunities.PUT("/:id", opportunityHandler.Update)
	opportunities.DELETE("/:id", opportunityHandler.Delete)

	apiGroup.GET("/stats", statsHandler.Snapshot)
	apiGroup.GET("/activities/recent", statsHandler.RecentActivity)
	apiGroup.GET("/users", authHandler.Users, adminMW)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(map[string]handler.PingFunc{
		"postgres": pool.Ping,
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
