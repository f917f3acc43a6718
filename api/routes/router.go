// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"villa/internal/auth"
	"villa/internal/availability"
	"villa/internal/bookings"
	"villa/internal/content"
	"villa/internal/shared/config"
	"villa/internal/shared/database"
	"villa/internal/shared/middleware"
	"villa/pkg/cache"
	"villa/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	hook   bookings.PostCommitHook

	contentService      content.Service
	availabilityService availability.Service
	requireAdmin        gin.HandlerFunc
}

// NewRouter creates a new router instance. hook receives committed booking events and may be nil.
func NewRouter(cfg *config.Config, db *database.DB, hook bookings.PostCommitHook) *Router {
	return &Router{
		config: cfg,
		db:     db,
		hook:   hook,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/metrics", metrics.Handler())
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// order matters: bookings depend on the content and availability services
		r.setupContentRoutes(api)
		r.setupAvailabilityRoutes(api)
		r.setupBookingRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "villa-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "villa-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"redis":       r.db.GetRedisClient() != nil,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.config.Admin)
	authController := auth.NewController(authService, r.config.Admin.CookieName, r.config.Admin.CookieSecure)

	r.requireAdmin = middleware.RequireAdmin(authService, r.config.Admin.CookieName)
	auth.SetupAuthRoutes(rg, authController, r.requireAdmin)
}

func (r *Router) setupContentRoutes(rg *gin.RouterGroup) {
	contentRepo := content.NewRepository(r.db.GetPostgreSQL())
	contentService := content.NewService(contentRepo)
	if rdb := r.db.GetRedisClient(); rdb != nil {
		contentService.SetCacheService(cache.NewService(rdb), r.config.Redis.ContentCacheTTL)
	}
	r.contentService = contentService

	contentController := content.NewController(contentService)
	content.SetupContentRoutes(rg, contentController)
	content.SetupAdminContentRoutes(r.adminGroup(rg), contentController)
}

func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.availabilityService = availability.NewService(r.contentService, bookingRepo, r.config.Site.Currency)
	r.availabilityService.SetMaxStayNights(r.config.Site.MaxStayNights)

	availability.SetupAvailabilityRoutes(rg, availability.NewController(r.availabilityService))
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.availabilityService, r.config.Location())

	if rdb := r.db.GetRedisClient(); rdb != nil {
		bookingService.SetAvailabilityLock(bookings.NewRedisLock(rdb, r.config.Redis.LockTTL))
	}
	if r.hook != nil {
		bookingService.SetPostCommitHook(r.hook)
	}

	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
	bookings.SetupAdminBookingRoutes(r.adminGroup(rg), bookingController)
}

func (r *Router) adminGroup(rg *gin.RouterGroup) *gin.RouterGroup {
	return rg.Group("/admin", r.requireAdmin)
}
