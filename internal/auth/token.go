// Package auth issues and verifies the signed identity claims carried by
// bearer tokens, and wraps password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medbook/appointment-api/internal/model"
)

// TokenTTL is the fixed token lifetime. Expiry is terminal: there is no
// refresh path, callers must log in again.
const TokenTTL = 5 * time.Hour

var ErrBadToken = errors.New("invalid token")

// Claims is the identity embedded in every token. Nothing is stored
// server-side; the signature is the only session state.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs an HS256 token for the user and returns it with its expiry.
func Issue(secret string, u model.User) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(TokenTTL)
	c := Claims{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies signature and expiry and returns the embedded claims.
func Parse(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}
