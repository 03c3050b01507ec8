// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"jobdesk/internal/domain/auth"
	"jobdesk/internal/domain/jobposting"
	"jobdesk/internal/domain/organization"
	"jobdesk/internal/infrastructure/http/v1/handlers"
	"jobdesk/internal/infrastructure/http/v1/middleware"
	"jobdesk/internal/infrastructure/storage/postgres"
	"jobdesk/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	AuthService         *auth.Service
	OrganizationService *organization.Service
	JobPostingService   *jobposting.Service
	AuditRecorder       *postgres.AuditRecorder
}

// NewRouter creates and configures the Gin router. Reads are public,
// mutations require a valid token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	orgHandler := handlers.NewOrganizationHandler(base, cfg.OrganizationService)
	postingHandler := handlers.NewJobPostingHandler(base, cfg.JobPostingService)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/auth/register", authHandler.Register)
		apiV1.POST("/auth/login", authHandler.Login)
		apiV1.GET("/auth/me", middleware.Auth(cfg.JWTValidator), authHandler.Me)

		// Public reads. A token is optional here but, when present, puts
		// the user into the request context for logging.
		public := apiV1.Group("")
		public.Use(middleware.OptionalAuth(cfg.JWTValidator))
		{
			public.GET("/organizations", orgHandler.List)
			public.GET("/organizations/:id", orgHandler.Get)
			public.GET("/job-postings", postingHandler.List)
			public.GET("/job-postings/:id", postingHandler.Get)
		}

		// Authenticated writes
		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		{
			protected.POST("/organizations", orgHandler.Create)
			protected.PUT("/organizations/:id", orgHandler.Update)
			protected.DELETE("/organizations/:id", orgHandler.Delete)

			protected.POST("/job-postings", postingHandler.Create)
			protected.PUT("/job-postings/:id", postingHandler.Update)
			protected.DELETE("/job-postings/:id", postingHandler.Delete)

			if cfg.AuditRecorder != nil {
				auditHandler := handlers.NewAuditHandler(base, cfg.AuditRecorder)
				protected.GET("/audit/:entityType/:id", auditHandler.Entries)
			}
		}
	}

	return router
}
