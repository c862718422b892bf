package utils

import (
	"errors"
	"strconv"
	"time"

	"etude/internal/config"
	"etude/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
	tokenIssuer     = "etude-api"
)

var (
	ErrJWTSecretMissing = errors.New("JWT_SECRET not configured")
	ErrInvalidToken     = errors.New("invalid token")
	ErrWrongTokenType   = errors.New("wrong token type")
)

func jwtSecret() ([]byte, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(secret), nil
}

func signClaims(secret []byte, claims *models.UserClaims, tokenType string, ttl time.Duration, now time.Time) (string, error) {
	c := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		TokenType:    tokenType,
		UserID:       claims.UserID,
		Email:        claims.Email,
		Role:         claims.Role,
		TokenVersion: claims.TokenVersion,
	}
	if tokenType == models.TokenTypeAccess {
		c.Permissions = claims.Permissions
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// GenerateTokens generates an access token and a refresh token for the given user claims.
// The JWT secret is expected to be set in the environment variable JWT_SECRET.
func GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	accessToken, err = signClaims(secret, claims, models.TokenTypeAccess, AccessTokenTTL, now)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = signClaims(secret, claims, models.TokenTypeRefresh, RefreshTokenTTL, now)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ParseToken parses and validates a JWT token string of the expected type.
func ParseToken(tokenStr, tokenType string) (*models.UserClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
