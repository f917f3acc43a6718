package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"syscall"
	"time"

	"villa/api/routes"
	"villa/docs"
	"villa/internal/bookings"
	"villa/internal/notifications"
	"villa/internal/shared/config"
	"villa/internal/shared/database"
	"villa/internal/shared/middleware"
	"villa/pkg/logger"
	"villa/pkg/metrics"
	"villa/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/oklog/run"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	// the logger picks its handler from the gin mode
	appLogger = logger.New(cfg.LogLevel)
	logger.SetDefault(appLogger)

	if err := cfg.Validate(); err != nil {
		appLogger.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("booking_requests", cfg.RateLimit.BookingRequests),
			slog.Bool("redis", db.GetRedisClient() != nil),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	g := &run.Group{}

	var hook bookings.PostCommitHook
	if cfg.Notifications.Enabled {
		pipeline, err := notifications.NewPipeline(cfg)
		if err != nil {
			appLogger.Error("Failed to initialize notifications", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := pipeline.Close(); err != nil {
				appLogger.Error("Error closing notification pipeline", slog.Any("error", err))
			}
		}()
		hook = pipeline.Dispatcher
		addNotificationActors(g, pipeline)
		appLogger.Info("Notifications enabled", slog.String("broker", cfg.Notifications.Broker))
	} else {
		appLogger.Info("Notifications disabled")
	}

	docs.SwaggerInfo.BasePath = cfg.GetAPIBasePath()
	docs.SwaggerInfo.Version = Version

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        setupRouter(cfg, db, rateLimiter, hook),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	g.Add(func() error {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_base", cfg.GetAPIBasePath()),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		appLogger.Info("Shutting down server...")
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("Forced shutdown", slog.Any("error", err))
		}
	})

	g.Add(run.SignalHandler(context.Background(), syscall.SIGINT, syscall.SIGTERM))

	if err := g.Run(); err != nil {
		var sigErr run.SignalError
		if !errors.As(err, &sigErr) {
			appLogger.Error("Exited with error", slog.Any("error", err))
			os.Exit(1)
		}
	}
	appLogger.Info("Server exited gracefully")
}

// addNotificationActors runs the dispatcher workers and, with a broker, the consumer
func addNotificationActors(g *run.Group, pipeline *notifications.Pipeline) {
	dispatchCtx, dispatchCancel := context.WithCancel(context.Background())
	g.Add(func() error {
		return pipeline.Dispatcher.Run(dispatchCtx)
	}, func(error) {
		dispatchCancel()
	})

	if pipeline.Consumer == nil {
		return
	}
	consumeCtx, consumeCancel := context.WithCancel(context.Background())
	g.Add(func() error {
		return pipeline.Consumer.Run(consumeCtx)
	}, func(error) {
		consumeCancel()
	})
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, hook bookings.PostCommitHook) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery(), metrics.Middleware())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		// the admin cookie needs a concrete origin echoed back, never "*"
		corsConfig.AllowOriginFunc = func(origin string) bool { return cfg.IsDevelopment() }
	}
	engine.Use(cors.New(corsConfig))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	routes.NewRouter(cfg, db, hook).SetupRoutes(engine)
	return engine
}
