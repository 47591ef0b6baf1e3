package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, in order of specificity. Callers that only care
// about pass/fail can treat any non-nil error as "reject".
var (
	ErrMalformed        = errors.New("token malformed")
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
)

// Identity is the trusted, decoded form of a credential. It is constructed
// per-request by the auth middleware and never persisted.
type Identity struct {
	SubjectID string
	Role      Role
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed credentials. The signing
// secret comes from configuration; construction fails on an empty secret so
// a misconfigured deployment cannot silently mint verifiable tokens.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue signs a credential for the subject with the given lifetime.
func (tc *TokenCodec) Issue(subjectID string, role Role, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a credential, returning the embedded identity.
// Failures map onto ErrInvalidSignature, ErrExpired, or ErrMalformed.
func (tc *TokenCodec) Verify(credential string) (*Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		return tc.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !token.Valid {
		return nil, ErrMalformed
	}

	role, ok := ParseRole(claims.Role)
	if !ok {
		return nil, ErrMalformed
	}
	return &Identity{SubjectID: claims.Subject, Role: role}, nil
}
