package jwtPkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	SessionSecretEnv = "JWT_SESSION_SECRET"
	SessionClaim     = "session_id"
	SessionLocalsKey = "session_id"
)

var (
	ErrEmptyAuthorization   = errors.New("empty Authorization header")
	ErrInvalidAuthorization = errors.New("invalid Authorization format")
	ErrSecretNotConfigured  = errors.New("JWT secret not configured")
	ErrMissingSessionClaim  = errors.New("token has no session claim")
)

func secret() ([]byte, error) {
	key := os.Getenv(SessionSecretEnv)
	if key == "" {
		return nil, ErrSecretNotConfigured
	}
	return []byte(key), nil
}

// SignSession issues a token bound to one chat session.
func SignSession(sessionID string, ttl time.Duration) (string, time.Time, error) {
	key, err := secret()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s not set: %w", SessionSecretEnv, err)
	}

	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
		SessionClaim: sessionID,
	}

	logrus.WithField("session_id", sessionID).Debug("Creating session token")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign session token")
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ParseSession verifies raw and returns the session id it was issued for.
func ParseSession(raw string) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sessionID, ok := claims[SessionClaim].(string)
	if !ok || sessionID == "" {
		return "", ErrMissingSessionClaim
	}

	return sessionID, nil
}

func VerifyTokenHeader(c *fiber.Ctx) (string, error) {
	log := logrus.WithField("func", "VerifyTokenHeader")

	header := c.Get("Authorization")
	if header == "" {
		log.Debug("Empty Authorization header")
		return "", ErrEmptyAuthorization
	}

	parts := strings.SplitN(header, "Bearer ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		log.WithField("header_parts", len(parts)).Debug("Invalid Authorization format")
		return "", ErrInvalidAuthorization
	}

	sessionID, err := ParseSession(strings.TrimSpace(parts[1]))
	if err != nil {
		log.WithError(err).Warn("Failed to verify session token")
		return "", err
	}

	return sessionID, nil
}

func GetSessionID(c *fiber.Ctx) (string, error) {
	sessionID, ok := c.Locals(SessionLocalsKey).(string)
	if !ok || sessionID == "" {
		return "", fiber.ErrUnauthorized
	}

	return sessionID, nil
}
