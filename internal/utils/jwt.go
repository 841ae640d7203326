package utils

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing signed tokens
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid token")

// ParseAccessToken verifies an HS256 token signed with secret and returns
// its subject, the username of the caller.  Tokens are issued outside this
// service; only HMAC signatures are accepted and the subject must be a
// non-empty string.
func ParseAccessToken(secret, raw string) (string, error) {
	if secret == "" || strings.TrimSpace(raw) == "" {
		return "", ErrInvalidToken
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
