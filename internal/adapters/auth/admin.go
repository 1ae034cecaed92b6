package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminVerifier checks the super-admin secret against a bcrypt hash.
type AdminVerifier struct {
	hash []byte
}

// NewAdminVerifier returns a verifier for the given bcrypt hash. An empty hash rejects everything.
func NewAdminVerifier(hash string) *AdminVerifier {
	return &AdminVerifier{hash: []byte(hash)}
}

func (v *AdminVerifier) Verify(password string) bool {
	if len(v.hash) == 0 || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
}

// HashAdminPassword hashes a plaintext admin secret for NewAdminVerifier.
func HashAdminPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin password: %w", err)
	}
	return string(hash), nil
}
