// Package token issues and verifies signed session tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails verification or is
// structurally unusable.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the standard registered claims plus the username the
// token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Generate issues an HS256-signed token for username, valid for ttl from now.
func Generate(username string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
	})
	return t.SignedString(secret)
}

// Verify checks the signature and expiry of tokenString and returns the
// username it was issued for.
func Verify(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

// UnverifiedClaims reads the username and expiry out of tokenString without
// checking the signature. The client holds no signing secret and only needs
// to decide whether a stored token is worth presenting again; the server
// stays the authority on validity.
func UnverifiedClaims(tokenString string) (username string, expiresAt time.Time, err error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", time.Time{}, err
	}
	if claims.Username == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, ErrInvalidToken
	}
	return claims.Username, claims.ExpiresAt.Time, nil
}
