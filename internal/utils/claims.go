package utils

import (
	"errors"

	"etude/internal/models"

	"github.com/gofiber/fiber/v2"
)

var ErrMissingClaims = errors.New("no authenticated account on request")

// GetUserClaims returns the claims stored by the auth middleware.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, ErrMissingClaims
	}
	return claims, nil
}
