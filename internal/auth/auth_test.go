package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier(t *testing.T) {
	secret := []byte("test-secret")
	v := NewJWTVerifier(secret)

	t.Run("Should accept a token it issued", func(t *testing.T) {
		tok, err := IssueToken(secret, "ada@example.com", time.Hour)
		require.NoError(t, err)

		id, err := v.Verify(context.Background(), tok)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", id.Email)
		assert.Equal(t, "ada@example.com", id.Subject)
	})
	t.Run("Should reject an expired token", func(t *testing.T) {
		tok, err := IssueToken(secret, "ada@example.com", -time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		tok, err := IssueToken([]byte("other"), "ada@example.com", time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("Should reject a token without email", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(secret)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIssueToken_RequiresEmail(t *testing.T) {
	_, err := IssueToken([]byte("s"), "", time.Hour)
	assert.Error(t, err)
}

type stubIDTokenVerifier struct {
	token *fbauth.Token
	err   error
}

func (s stubIDTokenVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return s.token, s.err
}

func TestFirebaseVerifier(t *testing.T) {
	t.Run("Should map uid and email claim", func(t *testing.T) {
		v := &FirebaseVerifier{client: stubIDTokenVerifier{token: &fbauth.Token{
			UID:    "uid-1",
			Claims: map[string]interface{}{"email": "ada@example.com", "email_verified": true},
		}}}

		id, err := v.Verify(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", id.Subject)
		assert.Equal(t, "ada@example.com", id.Email)
		assert.Equal(t, true, id.Claims["email_verified"])
	})
	t.Run("Should wrap provider errors as invalid token", func(t *testing.T) {
		v := &FirebaseVerifier{client: stubIDTokenVerifier{err: errors.New("ID token has expired")}}

		_, err := v.Verify(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewFirebaseVerifier_BadBase64(t *testing.T) {
	_, err := NewFirebaseVerifier(context.Background(), "%%%not-base64%%%")
	assert.Error(t, err)
}
