package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrExpired             = errors.New("instant has expired")
	ErrSelfPurchase        = errors.New("cannot purchase own instant")
	ErrExclusiveSold       = errors.New("exclusive instant already sold")
	ErrAlreadyOwned        = errors.New("instant already purchased")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
