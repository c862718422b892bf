package auth

import (
	"errors"
	"time"

	"etude/internal/models"
	"etude/internal/repositories"
	"etude/internal/utils"
	"etude/internal/validation"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"

	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

type Service interface {
	Login(email, password, ip string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
	GetUserTokenVersion(userID uint) (int, error)
	GetUserByID(userID uint) (*models.User, error)
	CreateUser(email, name, password, role string) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
		now:      time.Now,
	}
}

func claimsFor(user *models.User) *models.UserClaims {
	return &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	}
}

func (s *service) Login(email, password, ip string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", "", err
		}
		log.Info().Str("email", email).Msg("login failed: unknown account")
		return nil, "", "", ErrInvalidCredentials
	}

	if user.Status == StatusDisabled {
		return nil, "", "", ErrAccountDisabled
	}
	if user.AccountLockoutUntil != nil && user.AccountLockoutUntil.After(s.now()) {
		return nil, "", "", ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Info().Uint("user_id", user.ID).Msg("login failed: incorrect password")
		if err := s.userRepo.RecordFailedLogin(user.ID, maxFailedAttempts, lockoutDuration); err != nil {
			log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record failed login")
		}
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(claimsFor(user))
	if err != nil {
		log.Error().Err(err).Msg("error generating tokens")
		return nil, "", "", ErrTokenGeneration
	}

	if err := s.userRepo.RecordLogin(user.ID, ip, s.now()); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record login")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	claims, err := utils.ParseToken(refreshToken, models.TokenTypeRefresh)
	if err != nil {
		return "", "", ErrInvalidRefresh
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", ErrInvalidRefresh
	}
	if user.Status == StatusDisabled {
		return "", "", ErrAccountDisabled
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", ErrTokenVersion
	}

	access, refresh, err := utils.GenerateTokens(claimsFor(user))
	if err != nil {
		return "", "", ErrTokenGeneration
	}
	return access, refresh, nil
}

func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	if err := validation.CheckPassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// UpdatePassword also bumps the token version.
	return s.userRepo.UpdatePassword(userID, string(hashedPassword))
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	return s.userRepo.GetTokenVersion(userID)
}

func (s *service) GetUserByID(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// CreateUser is used by the seeding command. Roles outside admin/editor
// are rejected.
func (s *service) CreateUser(email, name, password, role string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleEditor {
		return nil, errors.New("unknown role: " + role)
	}
	if err := validation.CheckPassword(password); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		Name:         name,
		Password:     string(hashed),
		Role:         role,
		Status:       StatusActive,
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
