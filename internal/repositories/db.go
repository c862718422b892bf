// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"context"
	"fmt"
	"time"

	"etude/internal/config"
	"etude/internal/models"
	"etude/internal/repositories/cache"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is nil when Redis is unreachable.
var CacheService *cache.CacheService

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func loadDBConfig() DBConfig {
	return DBConfig{
		MaxIdleConns:    config.GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    config.GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
	}
}

func postgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Europe/Paris",
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_USER", "postgres"),
		config.GetEnv("DB_PASSWORD", "postgres"),
		config.GetEnv("DB_NAME", "etude"),
		config.GetEnv("DB_PORT", "5432"),
		config.GetEnv("DB_SSLMODE", "disable"),
	)
}

// gormLogger routes GORM warnings through zerolog and ignores
// "record not found".
func gormLogger() logger.Interface {
	return logger.New(
		&log.Logger,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// InitDB connects to PostgreSQL, applies pool settings and migrations.
func InitDB() error {
	db, err := gorm.Open(postgres.Open(postgresDSN()), &gorm.Config{Logger: gormLogger()})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	cfg := loadDBConfig()
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	log.Info().Msg("PostgreSQL connected & migrations applied")
	return nil
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.ContactRequest{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// InitCache connects to Redis. A failed ping leaves CacheService nil and
// the caller falls back to an uncached setup.
func InitCache(ctx context.Context) {
	client := cache.NewRedisClient(cache.NewRedisConfig())
	svc := cache.NewCacheService(client, config.GetDurationEnv("CACHE_TTL", 10*time.Minute))
	if err := svc.HealthCheck(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		_ = svc.Close()
		return
	}
	CacheService = svc
	log.Info().Msg("Redis connected")
}

// ActiveCache returns the active cache, or a no-op cache when Redis is down.
func ActiveCache() Cache {
	if CacheService == nil {
		return cache.Noop{}
	}
	return CacheService
}

// Close releases the database and Redis connections.
func Close() {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close database connection")
			}
		}
	}
	if CacheService != nil {
		if err := CacheService.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close Redis connection")
		}
	}
}

// DBStats logs pool statistics once per interval until ctx is done.
func DBStats(ctx context.Context, interval time.Duration) {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := sqlDB.Stats()
			log.Debug().
				Int("open", stats.OpenConnections).
				Int("idle", stats.Idle).
				Int("in_use", stats.InUse).
				Int64("wait_count", stats.WaitCount).
				Dur("wait", stats.WaitDuration).
				Msg("db pool stats")
		}
	}
}
