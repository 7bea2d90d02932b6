package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier resolves a bearer token into the acting account identity.
type Verifier interface {
	Verify(token string) (string, error)
}

// HMAC issues and verifies HS256 tokens whose subject is the account id.
type HMAC struct {
	secret []byte
	now    func() time.Time
}

// NewHMAC returns an HMAC token authority for the given shared secret.
func NewHMAC(secret string) *HMAC {
	return &HMAC{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed token identifying account, valid for ttl.
func (h *HMAC) Issue(account string, ttl time.Duration) (string, error) {
	if account == "" {
		return "", errors.New("auth: empty account")
	}
	now := h.now()
	claims := jwt.RegisteredClaims{
		Subject:   account,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// Verify parses and validates the token and returns its subject.
func (h *HMAC) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return h.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return h.now() }))
	if err != nil {
		return "", fmt.Errorf("auth: %w", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("auth: token has no subject")
	}
	return claims.Subject, nil
}
