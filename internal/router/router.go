package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/config"
	"github.com/stemsi/schoolhealth-backend/internal/handler"
	"github.com/stemsi/schoolhealth-backend/internal/logger"
	"github.com/stemsi/schoolhealth-backend/internal/middleware"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/response"
	"github.com/stemsi/schoolhealth-backend/internal/service"
)

// policyCacheSeconds is how long clients may cache the compiled-in policy tables.
const policyCacheSeconds = 300

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth   *handler.AuthHandler
	Access *handler.AccessHandler
	Health *handler.HealthHandler
	WS     *handler.WSHandler
	System *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	loginLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request log line can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(logger.Middleware(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	// ─── 1. Auth Group (Rate Limited Login) ────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(middleware.NoStore())
	{
		auth.POST("/login", loginLimiter.Middleware(), middleware.OptionalSession(authService), handlers.Auth.Login)
		auth.POST("/logout", middleware.OptionalSession(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireSession(authService), handlers.Auth.Me)
	}

	// ─── 2. Access Group (Policy Introspection) ────────────────────────
	accessAPI := router.Group("/api/v1/access")
	{
		accessAPI.GET("/roles", middleware.CacheControl(policyCacheSeconds), handlers.Access.ListRoles)
		accessAPI.GET("/permissions",
			middleware.NoStore(),
			middleware.OptionalSession(authService),
			handlers.Access.ListPermissions,
		)
		accessAPI.POST("/check", middleware.RequireSession(authService), handlers.Access.Check)
		accessAPI.GET("/route", middleware.RequireSession(authService), handlers.Access.CheckRoute)
	}

	// ─── 3. Health Data Group (Session + Route Policy) ─────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireSession(authService), middleware.NoStore())
	{
		api.GET("/students/health",
			middleware.RequireRoute(access.RouteStudentHealth, log),
			handlers.Health.ListStudentHealth,
		)

		medicine := api.Group("/medicine/requests")
		medicine.Use(middleware.RequireRoute(access.RouteMedicine, log))
		{
			medicine.GET("", handlers.Health.ListMedicineRequests)
			medicine.POST("",
				middleware.RequirePermission(model.PermissionSubmitMedicineRequest),
				handlers.Health.SubmitMedicineRequest,
			)
			medicine.PATCH("/:id",
				middleware.RequirePermission(model.PermissionApproveMedicines),
				handlers.Health.ReviewMedicineRequest,
			)
		}
	}

	// ─── 4. WebSocket Group (Token Query Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireSession(authService))
	{
		ws.GET("/session/stream", handlers.WS.SessionStream)
	}

	return router
}
