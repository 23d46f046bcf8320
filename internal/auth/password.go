package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"instantshare/internal/util"
)

// HashPassword derives a bcrypt hash for storage in the user record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash against a submitted password.
// Returns ErrInvalidCredentials on mismatch.
func CheckPassword(hash, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return util.ErrInvalidCredentials
	}
	return nil
}
