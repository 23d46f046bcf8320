package domain

import (
	"time"

	"github.com/google/uuid"
)

// StartingCredits is granted to every user at registration.
const StartingCredits = 20

// Badge records an unlock earned by a purchase.
type Badge struct {
	InstantID string `json:"instantId"` // Instant the badge was earned on
	Exclusive bool   `json:"exclusive"` // Whether the instant was exclusive at purchase time
}

// User represents a registered member of the service.
// JSON field names match the persisted snapshot layout and must not change.
type User struct {
	ID                string     `json:"id"`                // Opaque unique id
	Username          string     `json:"username"`          // Unique, case-sensitive
	Password          string     `json:"password"`          // bcrypt hash of the credential
	Credits           int        `json:"credits"`           // Spendable balance, never negative
	IsPremium         bool       `json:"isPremium"`         // Persisted but unused by core logic
	LastCheckIn       *time.Time `json:"lastCheckIn"`       // Nil until the first daily check-in
	InstantsCreated   []string   `json:"instantsCreated"`   // Instant ids authored, in creation order
	InstantsPurchased []string   `json:"instantsPurchased"` // Instant ids unlocked, in purchase order
	Badges            []Badge    `json:"badges"`            // Earned on each purchase, in purchase order
}

// NewUser creates a new User with the starting credit grant.
// The password is expected to be hashed by the caller already.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:                uuid.NewString(),
		Username:          username,
		Password:          passwordHash,
		Credits:           StartingCredits,
		InstantsCreated:   []string{},
		InstantsPurchased: []string{},
		Badges:            []Badge{},
	}
}
