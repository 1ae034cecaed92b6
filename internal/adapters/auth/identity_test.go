package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func signIdentity(t *testing.T, secret string, claims identityClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validIdentityClaims() identityClaims {
	return identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "google-oauth2|42",
			Audience:  jwt.ClaimStrings{"campusevents"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:   "grace@example.com",
		Name:    "Grace",
		Picture: "https://pics.test/grace.png",
	}
}

func TestIdentityVerifier_Verify(t *testing.T) {
	v := NewIdentityVerifier("broker-secret", "campusevents")

	ident, err := v.Verify(context.Background(), signIdentity(t, "broker-secret", validIdentityClaims()))
	require.NoError(t, err)
	assert.Equal(t, &domain.ExternalIdentity{
		Subject:   "google-oauth2|42",
		Email:     "grace@example.com",
		Name:      "Grace",
		AvatarURL: "https://pics.test/grace.png",
	}, ident)
}

func TestIdentityVerifier_Rejects(t *testing.T) {
	wrongAud := validIdentityClaims()
	wrongAud.Audience = jwt.ClaimStrings{"someone-else"}
	noEmail := validIdentityClaims()
	noEmail.Email = ""
	expired := validIdentityClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := []struct {
		name     string
		verifier *IdentityVerifier
		token    string
	}{
		{name: "wrong secret", verifier: NewIdentityVerifier("broker-secret", ""), token: signIdentity(t, "other", validIdentityClaims())},
		{name: "wrong audience", verifier: NewIdentityVerifier("broker-secret", "campusevents"), token: signIdentity(t, "broker-secret", wrongAud)},
		{name: "missing email", verifier: NewIdentityVerifier("broker-secret", ""), token: signIdentity(t, "broker-secret", noEmail)},
		{name: "expired", verifier: NewIdentityVerifier("broker-secret", ""), token: signIdentity(t, "broker-secret", expired)},
		{name: "not configured", verifier: NewIdentityVerifier("", ""), token: signIdentity(t, "", validIdentityClaims())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}
