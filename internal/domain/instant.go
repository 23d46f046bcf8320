package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pricing is a fixed policy, not user-set.
const (
	PriceExclusive = 50
	PriceShared    = 5
)

// Lifetime is how long an instant stays active after creation.
const Lifetime = 24 * time.Hour

// Instant represents a time-limited media post.
// JSON field names match the persisted snapshot layout and must not change.
type Instant struct {
	ID          string    `json:"id"`          // Opaque unique id
	Title       string    `json:"title"`       // Non-empty
	Filename    string    `json:"filename"`    // Opaque reference into external media storage
	CreatorID   string    `json:"creatorId"`   // Owning user
	IsExclusive bool      `json:"isExclusive"` // Exclusive instants sell to at most one buyer
	Price       int       `json:"price"`       // 50 if exclusive, 5 otherwise
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"` // CreatedAt + Lifetime
	IsExpired   bool      `json:"isExpired"` // Monotonic false -> true, never reverts
	Buyers      []string  `json:"buyers"`    // Distinct purchaser ids, in purchase order
}

// NewInstant creates an Instant priced by the exclusivity policy,
// expiring one Lifetime after now.
func NewInstant(creatorID, title, filename string, exclusive bool, now time.Time) *Instant {
	price := PriceShared
	if exclusive {
		price = PriceExclusive
	}
	return &Instant{
		ID:          uuid.NewString(),
		Title:       title,
		Filename:    filename,
		CreatorID:   creatorID,
		IsExclusive: exclusive,
		Price:       price,
		CreatedAt:   now,
		ExpiresAt:   now.Add(Lifetime),
		Buyers:      []string{},
	}
}

// HasBuyer reports whether userID already purchased the instant.
func (i *Instant) HasBuyer(userID string) bool {
	for _, id := range i.Buyers {
		if id == userID {
			return true
		}
	}
	return false
}
