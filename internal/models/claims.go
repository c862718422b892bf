package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	PermissionReadAdmin = "admin:read"

	PermissionListingRead    = "listings:read"
	PermissionListingWrite   = "listings:write"
	PermissionListingPublish = "listings:publish"

	PermissionContactRead  = "contacts:read"
	PermissionContactWrite = "contacts:write"

	PermissionChangePassword = "user:change-password"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type UserClaims struct {
	jwt.RegisteredClaims
	TokenType    string   `json:"typ"`
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionListingRead,
			PermissionListingWrite,
			PermissionListingPublish,
			PermissionContactRead,
			PermissionContactWrite,
			PermissionChangePassword,
		}
	case RoleEditor:
		return []string{
			PermissionListingRead,
			PermissionListingWrite,
			PermissionContactRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
