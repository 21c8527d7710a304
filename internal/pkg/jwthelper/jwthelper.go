// Package jwthelper issues and verifies the bearer tokens handed out at login.
//
// A token is an HS256 JWT whose subject is the member email. Nothing about it is
// stored server-side: verification rebuilds everything from the token itself.
package jwthelper

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token expired")
)

type Codec struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now, mostly for tests that need to step past expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

func NewCodec(signingKey []byte, ttl time.Duration, opts ...Option) *Codec {
	c := &Codec{
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GenerateToken signs a token for subject that expires ttl from now.
func (c *Codec) GenerateToken(subject string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		ID:        uuid.NewString(),
	})

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// ParseToken verifies tokenString and returns its subject. The returned error is
// always one of ErrMalformedToken, ErrBadSignature or ErrTokenExpired.
func (c *Codec) ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		default:
			return "", ErrMalformedToken
		}
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", ErrMalformedToken
	}

	return claims.Subject, nil
}
