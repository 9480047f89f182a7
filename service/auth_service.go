package service

import (
	"fmt"
	"time"

	"go-fintrack/config"
	"go-fintrack/logger"
	"go-fintrack/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func getSessionKey() []byte {
	return []byte(config.AppConfig.Session.SecretKey)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IssueSession signs a session token for the given user. The token is the
// value of the session cookie; it carries the user's identity so no
// server-side session row is needed.
func IssueSession(user *model.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(config.AppConfig.Session.TTLHours) * time.Hour)

	claims := &model.AppClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(getSessionKey())
	if err != nil {
		logger.Log.WithError(err).WithField("username", user.Username).Error("Failed to sign session token")
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// ParseSession verifies a session cookie value and returns its claims.
func ParseSession(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return getSessionKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
