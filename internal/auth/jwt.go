// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AdminTokenTTL is how long an admin session token stays valid.
	AdminTokenTTL = 12 * time.Hour

	adminRole = "admin"
	issuer    = "zelig-backend"
)

var ErrInvalidToken = errors.New("invalid token")

// AdminClaims are the claims carried by admin session tokens.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAdminToken signs an HS256 token for subject valid for ttl.
func GenerateAdminToken(subject string, secretKey []byte, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject cannot be empty")
	}
	if len(secretKey) == 0 {
		return "", errors.New("secret key cannot be empty")
	}

	now := time.Now()
	claims := AdminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken checks signature, expiry and role, returning the subject.
func ValidateToken(tokenString string, secretKey []byte) (string, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}

	if !token.Valid || claims.Role != adminRole || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
