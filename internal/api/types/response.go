package types

import (
	"time"

	"instantshare/internal/domain"
	"instantshare/internal/service"
)

// UserResponse is the user projection handed to clients. The password
// hash never leaves the server.
type UserResponse struct {
	ID                string         `json:"id"`
	Username          string         `json:"username"`
	Credits           int            `json:"credits"`
	IsPremium         bool           `json:"is_premium"`
	LastCheckIn       *time.Time     `json:"last_check_in,omitempty"`
	InstantsCreated   []string       `json:"instants_created"`
	InstantsPurchased []string       `json:"instants_purchased"`
	Badges            []domain.Badge `json:"badges"`
}

// NewUserResponse converts a domain user into its API projection.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Credits:           u.Credits,
		IsPremium:         u.IsPremium,
		LastCheckIn:       u.LastCheckIn,
		InstantsCreated:   u.InstantsCreated,
		InstantsPurchased: u.InstantsPurchased,
		Badges:            u.Badges,
	}
}

// InstantResponse is the instant projection handed to clients.
type InstantResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatorID   string    `json:"creator_id"`
	IsExclusive bool      `json:"is_exclusive"`
	Price       int       `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsExpired   bool      `json:"is_expired"`
	Buyers      []string  `json:"buyers"`
}

// NewInstantResponse converts a domain instant into its API projection.
func NewInstantResponse(in *domain.Instant) InstantResponse {
	return InstantResponse{
		ID:          in.ID,
		Title:       in.Title,
		CreatorID:   in.CreatorID,
		IsExclusive: in.IsExclusive,
		Price:       in.Price,
		CreatedAt:   in.CreatedAt,
		ExpiresAt:   in.ExpiresAt,
		IsExpired:   in.IsExpired,
		Buyers:      in.Buyers,
	}
}

// NewInstantResponses converts a slice of instants.
func NewInstantResponses(instants []*domain.Instant) []InstantResponse {
	out := make([]InstantResponse, 0, len(instants))
	for _, in := range instants {
		out = append(out, NewInstantResponse(in))
	}
	return out
}

// FanRankResponse is one leaderboard row.
type FanRankResponse struct {
	FanID        string `json:"fan_id"`
	TotalCredits int    `json:"total_credits"`
}

// ProfileResponse is a creator's public page.
type ProfileResponse struct {
	Username string            `json:"username"`
	Instants []InstantResponse `json:"instants"`
	TopFans  []FanRankResponse `json:"top_fans"`
}

// NewProfileResponse converts a profile view into its API projection.
func NewProfileResponse(view *service.ProfileView) ProfileResponse {
	fans := make([]FanRankResponse, 0, len(view.TopFans))
	for _, fr := range view.TopFans {
		fans = append(fans, FanRankResponse{FanID: fr.FanID, TotalCredits: fr.TotalCredits})
	}
	return ProfileResponse{
		Username: view.User.Username,
		Instants: NewInstantResponses(view.Instants),
		TopFans:  fans,
	}
}
