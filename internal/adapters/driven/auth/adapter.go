// Package auth implements admin token handling using HS256 JWTs.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// Ensure Adapter implements TokenAuthenticator
var _ driven.TokenAuthenticator = (*Adapter)(nil)

// Adapter mints and validates admin API tokens
type Adapter struct {
	secret []byte
	issuer string
}

// NewAdapter creates a new auth adapter with the given signing secret
func NewAdapter(secret string) *Adapter {
	return &Adapter{
		secret: []byte(secret),
		issuer: "semantiq-search",
	}
}

// GenerateToken creates a signed JWT for the given subject
func (a *Adapter) GenerateToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateToken checks a JWT and returns its subject
func (a *Adapter) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
