package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "screening-backend/internal/auth"
	"screening-backend/internal/conditions"
	"screening-backend/internal/operators"
	"screening-backend/internal/screening"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/server/middleware"
	"screening-backend/internal/shared/server/respond"
	"screening-backend/internal/talents"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	ConditionHandler *conditions.Handler
	ScreeningHandler *screening.Handler
	TalentHandler    *talents.Handler
	OperatorHandler  *operators.Handler
	GoogleAuth       *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	// Metrics stay outside auth so scrapers need no identity.
	r.GET("/metrics", metrics.Handler())

	r.Use(middleware.Auth(deps.Config.Env))
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"UPLOAD": {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/screening/upload" {
				return "UPLOAD"
			}
			return ""
		},
	}))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.OperatorHandler != nil {
		deps.OperatorHandler.RegisterRoutes(api)
	}
	if deps.ConditionHandler != nil {
		deps.ConditionHandler.RegisterRoutes(api)
	}
	if deps.ScreeningHandler != nil {
		deps.ScreeningHandler.RegisterRoutes(api)
	}
	if deps.TalentHandler != nil {
		deps.TalentHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
