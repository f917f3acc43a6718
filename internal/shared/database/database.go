package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"villa/internal/shared/config"
	applogger "villa/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds database connections
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
}

// InitDB connects to PostgreSQL, runs migrations and, when enabled, connects to Redis.
// Redis is optional: without it the process runs with an in-process lock and no cache.
func InitDB(cfg *config.Config) (*DB, error) {
	pg, err := initPostgreSQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = initRedis(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
	} else {
		applogger.GetDefault().Warn("Redis disabled, using in-process availability lock without cache")
	}

	return &DB{
		PostgreSQL: pg,
		Redis:      rdb,
	}, nil
}

func initPostgreSQL(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:  newGormLogger(cfg),
		NowFunc: func() time.Time { return time.Now().UTC() },
		// bookings and site content carry no foreign keys
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	configurePool(sqlDB, cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	applogger.GetDefault().Info("PostgreSQL connected",
		"host", cfg.Database.Host,
		"database", cfg.Database.Name,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)
	return db, nil
}

// configurePool applies the configured limits. Idle connections never exceed open ones.
func configurePool(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	idle := cfg.MaxIdleConns
	if cfg.MaxOpenConns > 0 && idle > cfg.MaxOpenConns {
		idle = cfg.MaxOpenConns
	}
	sqlDB.SetMaxIdleConns(idle)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// gormWriter routes GORM's printf-style output into the service logger
type gormWriter struct {
	log *applogger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info(fmt.Sprintf(format, args...), "component", "gorm")
}

func newGormLogger(cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}
	return logger.New(gormWriter{log: applogger.GetDefault()}, logger.Config{
		SlowThreshold:             cfg.Database.SlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

func redisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.IOTimeout,
		WriteTimeout: cfg.IOTimeout,
	}
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(redisOptions(cfg.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	applogger.GetDefault().Info("Redis connected", "addr", cfg.Redis.Addr, "pool_size", cfg.Redis.PoolSize)
	return rdb, nil
}

// Close closes all database connections
func (db *DB) Close() error {
	var errs []error
	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
			}
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	return errors.Join(errs...)
}

// HealthCheck pings PostgreSQL and, when configured, Redis
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.PostgreSQL != nil {
		sqlDB, err := db.PostgreSQL.DB()
		if err != nil {
			return fmt.Errorf("PostgreSQL health check failed: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("PostgreSQL ping failed: %w", err)
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}

	return nil
}

// GetRedisClient returns the Redis client
func (db *DB) GetRedisClient() *redis.Client {
	return db.Redis
}

// GetPostgreSQL returns the PostgreSQL GORM instance
func (db *DB) GetPostgreSQL() *gorm.DB {
	return db.PostgreSQL
}
