package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"etude/internal/models"
	"etude/internal/repositories/cache"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache Cache
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, c Cache) UserRepository {
	if c == nil {
		c = cache.Noop{}
	}
	return &userRepository{
		db:    db,
		cache: c,
	}
}

func userKey(id uint) string {
	return cache.GenerateKey(cache.EntityUser, cache.KeyID, id)
}

func (r *userRepository) invalidate(id uint) {
	if err := r.cache.Delete(context.Background(), userKey(id)); err != nil {
		log.Warn().Err(err).Uint("user_id", id).Msg("failed to invalidate user cache")
	}
}

func (r *userRepository) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return ErrDatabaseOperation
	}
	if count > 0 {
		return ErrEmailTaken
	}
	if err := r.db.Create(user).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(user.ID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(userID)
	return nil
}

// tokenState is what the auth middleware needs on every request. The
// password hash never reaches the cache.
type tokenState struct {
	TokenVersion int    `json:"token_version"`
	Status       string `json:"status"`
}

func (r *userRepository) GetTokenVersion(userID uint) (int, error) {
	ctx := context.Background()
	key := userKey(userID)

	var cached tokenState
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return cached.TokenVersion, nil
	}

	user, err := r.GetByID(userID)
	if err != nil {
		return 0, err
	}
	state := tokenState{TokenVersion: user.TokenVersion, Status: user.Status}
	if err := r.cache.Set(ctx, key, state); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("failed to cache token version")
	}
	return user.TokenVersion, nil
}

func (r *userRepository) UpdatePassword(userID uint, hashedPassword string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":      hashedPassword,
			"token_version": gorm.Expr("token_version + 1"),
		})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(userID)
	return nil
}

func (r *userRepository) RecordLogin(userID uint, ip string, at time.Time) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at":         at,
			"last_login_ip":         ip,
			"failed_login_attempts": 0,
			"account_lockout_until": nil,
		})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(userID)
	return nil
}

func (r *userRepository) RecordFailedLogin(userID uint, maxAttempts int, lockout time.Duration) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.FailedLoginAttempts++
		updates := map[string]interface{}{"failed_login_attempts": user.FailedLoginAttempts}
		if maxAttempts > 0 && user.FailedLoginAttempts >= maxAttempts {
			until := time.Now().Add(lockout)
			updates["account_lockout_until"] = until
			updates["failed_login_attempts"] = 0
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return ErrDatabaseOperation
	}
	r.invalidate(userID)
	return nil
}
