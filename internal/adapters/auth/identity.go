package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"campusevents/internal/domain"
)

// identityClaims is the payload of an identity token minted by the Google
// sign-in broker.
type identityClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// IdentityVerifier validates HS256 identity tokens shared with the sign-in broker.
type IdentityVerifier struct {
	secret   []byte
	audience string
}

// NewIdentityVerifier returns a verifier for tokens signed with secret. When
// audience is set the token's aud must contain it. An empty secret rejects every token.
func NewIdentityVerifier(secret, audience string) *IdentityVerifier {
	return &IdentityVerifier{secret: []byte(secret), audience: audience}
}

var errIdentityDisabled = errors.New("identity sign-in is not configured")

func (v *IdentityVerifier) Verify(_ context.Context, token string) (*domain.ExternalIdentity, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, errIdentityDisabled)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	claims := &identityClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return v.secret, nil }, opts...); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: identity token missing sub or email", domain.ErrInvalidCredentials)
	}
	return &domain.ExternalIdentity{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.Picture,
	}, nil
}
