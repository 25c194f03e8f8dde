// Package auth reads the access tokens issued by the upstream auth provider.
// Tokens are HS256 JWTs whose subject is the external auth id.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// UserMetadata holds the optional profile data the provider attaches.
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Claims are the access token claims we read.
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// GenerateToken signs a token for id. Used by tests and local tooling.
func GenerateToken(id models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email:        id.Email,
		UserMetadata: UserMetadata{FullName: id.Name},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseIdentity verifies tokenString and extracts the identity it carries.
// Any verification failure is reported as common.ErrorUnauthorized.
func ParseIdentity(tokenString string, secretKey []byte) (models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, fmt.Errorf("%w: token expired", common.ErrorUnauthorized)
		}
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: token has no subject", common.ErrorUnauthorized)
	}

	name := claims.UserMetadata.FullName
	if name == "" {
		name = claims.UserMetadata.Name
	}
	return models.Identity{Subject: claims.Subject, Email: claims.Email, Name: name}, nil
}
