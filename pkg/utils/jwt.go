package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the access token payload the client cares about.
// The client never verifies the signature (it has no secret); the remote is
// the authority. Parsing is only used to read identity hints and to drop
// tokens that are already expired instead of burning a request on a 401.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// ParseClaims decodes a bearer token without verifying its signature.
func ParseClaims(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()

	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, mapClaims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	userID, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

// IsExpired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim are treated as unexpired.
func (c *Claims) IsExpired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.After(c.ExpiresAt)
}
