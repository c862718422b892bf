package repositories

import (
	"time"

	"etude/internal/models"
)

// UserRepository defines the interface for back-office account storage
type UserRepository interface {
	// Create creates a new user in the database
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// Update updates an existing user's information
	Update(user *models.User) error

	// IncrementTokenVersion invalidates every token issued to the user
	IncrementTokenVersion(userID uint) error

	// GetTokenVersion returns the current token version
	GetTokenVersion(userID uint) (int, error)

	// UpdatePassword stores a new hash and bumps the token version
	UpdatePassword(userID uint, hashedPassword string) error

	// RecordLogin stamps a successful login and resets the failure counter
	RecordLogin(userID uint, ip string, at time.Time) error

	// RecordFailedLogin counts a failure and locks the account once
	// maxAttempts is reached
	RecordFailedLogin(userID uint, maxAttempts int, lockout time.Duration) error
}
