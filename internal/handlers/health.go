package handlers

import (
	"context"
	"time"

	"etude/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const Version = "1.0.0"

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewHealthHandler accepts a nil cache when Redis is disabled.
func NewHealthHandler(db *gorm.DB, c *cache.CacheService) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	database := "connected"
	if h.db == nil {
		database = "disabled"
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		database = "unreachable"
		status = "degraded"
	}

	redis := "disabled"
	if h.cache != nil {
		redis = "connected"
		if err := h.cache.HealthCheck(ctx); err != nil {
			redis = "unreachable"
			status = "degraded"
		}
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": Version,
		"services": fiber.Map{
			"database": database,
			"redis":    redis,
		},
	})
}

func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"enabled": false})
	}
	return c.JSON(fiber.Map{
		"enabled":     true,
		"cache_stats": h.cache.Stats(),
	})
}
