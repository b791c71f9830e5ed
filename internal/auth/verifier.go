package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a bearer token is malformed, expired, or
// fails signature checks.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified claim set behind a bearer token.
type Identity struct {
	Subject string
	Email   string
	Claims  map[string]interface{}
}

// Verifier turns a raw bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (*Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (*Identity, error) {
	return f(ctx, token)
}

func emailClaim(claims map[string]interface{}) string {
	email, _ := claims["email"].(string)
	return email
}
