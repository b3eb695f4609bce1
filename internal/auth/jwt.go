// Package auth - jwt.go handles JWT token creation, signing, and verification
// using a shared secret, including claims parsing for the auth middleware.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// jwtSecret holds the configured JWT secret
	jwtSecret     string
	jwtSecretOnce sync.Once
)

// Claims represents the JWT claims structure
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// generateRandomSecret creates a cryptographically secure random secret
func generateRandomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a less secure but functional secret
		return fmt.Sprintf("dev-fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

// ConfigureJWTSecret installs the signing secret from configuration.
// An empty secret generates a random one and warns: tokens then stop
// verifying across restarts, which is tolerable in development only.
// Call this once at application startup, before issuing or validating tokens.
func ConfigureJWTSecret(secret string) {
	jwtSecretOnce.Do(func() {
		if secret == "" {
			jwtSecret = generateRandomSecret()
			log.Printf("WARNING: auth.jwt_secret not set. Using auto-generated secret.")
			log.Printf("WARNING: Sessions will not persist across restarts. Set CHURCH_AUTH_JWT_SECRET for persistent sessions.")
			return
		}
		if len(secret) < 32 {
			log.Printf("WARNING: auth.jwt_secret is shorter than recommended 32 characters. Consider using a longer secret.")
		}
		jwtSecret = secret
	})
}

// GenerateJWT creates a JWT token for an authenticated user
func GenerateJWT(userID, username string, isAdmin bool, expiresIn time.Duration) (string, error) {
	if expiresIn == 0 {
		expiresIn = 24 * time.Hour
	}

	claims := &Claims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "church-backend",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ConfigureJWTSecret("") // no-op when already configured; dev fallback otherwise

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateJWT parses and validates a JWT token
func ValidateJWT(tokenString string) (*Claims, error) {
	ConfigureJWTSecret("")

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}

	return claims, nil
}
