package handlers

import (
	"errors"
	"time"

	"etude/internal/config"
	"etude/internal/models"
	"etude/internal/repositories"
	"etude/internal/services/auth"
	"etude/internal/utils"
	"etude/internal/utils/response"
	"etude/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser handles back-office authentication and returns JWT tokens
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var input loginRequest
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}

	user, accessToken, refreshToken, err := h.authService.Login(input.Email, input.Password, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return response.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, auth.ErrAccountLocked):
			return response.Error(c, fiber.StatusTooManyRequests, "Account temporarily locked, try again later")
		case errors.Is(err, auth.ErrAccountDisabled):
			return response.Error(c, fiber.StatusForbidden, "Account disabled")
		}
		log.Error().Err(err).Msg("login failed")
		return response.ServerError(c, "Authentication failed")
	}

	h.setAuthCookies(c, accessToken, refreshToken)

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":          user.ID,
			"email":       user.Email,
			"name":        user.Name,
			"role":        user.Role,
			"permissions": models.GetDefaultPermissions(user.Role),
		},
	})
}

// RefreshToken handles token refresh requests
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var input struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Error(c, fiber.StatusUnauthorized, "Refresh token not provided")
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshTokens(refreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("token refresh failed")
		return response.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	h.setAuthCookies(c, newAccessToken, newRefreshToken)

	return c.JSON(fiber.Map{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}

// LogoutUser invalidates every token of the current account
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.authService.Logout(claims.UserID); err != nil {
		log.Error().Err(err).Uint("user_id", claims.UserID).Msg("logout failed")
		return response.ServerError(c, "Failed to logout")
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Successfully logged out", nil)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

// ChangePassword handles password change requests. Existing sessions end,
// so the client has to log in again.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input changePasswordRequest
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.authService.ChangePassword(claims.UserID, input.OldPassword, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidOldPassword):
			return response.BadRequest(c, "Invalid old password")
		case errors.Is(err, validation.ErrPasswordLength),
			errors.Is(err, validation.ErrPasswordWeak),
			errors.Is(err, validation.ErrPasswordSpecial):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, repositories.ErrUserNotFound):
			return response.Unauthorized(c)
		}
		log.Error().Err(err).Uint("user_id", claims.UserID).Msg("password change failed")
		return response.ServerError(c, "Failed to change password")
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Password changed successfully", nil)
}

// Me returns the account behind the current access token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	user, err := h.authService.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.Unauthorized(c)
		}
		log.Error().Err(err).Uint("user_id", claims.UserID).Msg("profile lookup failed")
		return response.ServerError(c, "Failed to load profile")
	}
	return c.JSON(fiber.Map{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"role":          user.Role,
		"permissions":   claims.Permissions,
		"last_login_at": user.LastLoginAt,
	})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(utils.AccessTokenTTL.Seconds()),
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/api/refresh",
		SameSite: "Strict",
		MaxAge:   int(utils.RefreshTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for name, path := range map[string]string{"access_token": "/", "refresh_token": "/api/refresh"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   config.IsProduction(),
			Path:     path,
		})
	}
}
