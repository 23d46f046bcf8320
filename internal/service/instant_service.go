package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"instantshare/internal/auth"
	"instantshare/internal/domain"
	"instantshare/internal/store"
	"instantshare/internal/util"
)

// Check-in policy: one grant of 3 credits per 24h window.
const (
	CheckInReward   = 3
	CheckInCooldown = 24 * time.Hour
)

// TopFansLimit is how many fans a profile view shows.
const TopFansLimit = 10

// InstantView is an instant detail projection for one viewer.
type InstantView struct {
	Instant *domain.Instant
	CanView bool
}

// ProfileView is a creator profile projection: created instants in
// creation order plus the top fans leaderboard.
type ProfileView struct {
	User     *domain.User
	Instants []*domain.Instant
	TopFans  []*domain.FanRank
}

// InstantService defines the interface for the instant lifecycle, purchase
// and query business logic.
type InstantService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	CreateInstant(ctx context.Context, creatorID, title, filename string, exclusive bool, now time.Time) (*domain.Instant, error)
	Purchase(ctx context.Context, buyerID, instantID string, now time.Time) (*domain.Instant, *domain.User, error)
	CheckIn(ctx context.Context, userID string, now time.Time) (*domain.User, error)
	ActiveWall(ctx context.Context, now time.Time) ([]*domain.Instant, error)
	InstantDetail(ctx context.Context, viewerID, instantID string, now time.Time) (*InstantView, error)
	MediaAccess(ctx context.Context, viewerID, instantID string, now time.Time) (*domain.Instant, error)
	Profile(ctx context.Context, username string) (*ProfileView, error)
	User(ctx context.Context, userID string) (*domain.User, error)
}

// instantService implements the InstantService interface.
type instantService struct {
	store *store.Store
}

// NewInstantService creates a new instance of InstantService.
func NewInstantService(st *store.Store) InstantService {
	return &instantService{store: st}
}

// Register creates a user with the starting credit grant. The password is
// stored as a bcrypt hash.
func (s *instantService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, util.ErrInvalidInput
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	var user *domain.User
	err = s.store.Update(func(tx *store.Tx) error {
		if _, err := tx.UserByUsername(username); err == nil {
			return util.ErrDuplicateUsername
		}
		user = domain.NewUser(username, hash)
		tx.AddUser(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a username/password pair to the user record.
// Unknown users and wrong passwords both come back as ErrInvalidCredentials.
func (s *instantService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, util.ErrInvalidInput
	}
	var user *domain.User
	err := s.store.View(func(tx *store.Tx) error {
		u, err := tx.UserByUsername(username)
		if err != nil {
			return util.ErrInvalidCredentials
		}
		if err := auth.CheckPassword(u.Password, password); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateInstant posts a new instant for the creator. Price follows the
// fixed exclusivity policy; expiry is one lifetime after now.
func (s *instantService) CreateInstant(ctx context.Context, creatorID, title, filename string, exclusive bool, now time.Time) (*domain.Instant, error) {
	if title == "" || filename == "" {
		return nil, util.ErrInvalidInput
	}
	var instant *domain.Instant
	err := s.store.Update(func(tx *store.Tx) error {
		creator, err := tx.UserByID(creatorID)
		if err != nil {
			return fmt.Errorf("create instant: creator %s: %w", creatorID, err)
		}
		instant = domain.NewInstant(creatorID, title, filename, exclusive, now)
		tx.AddInstant(instant)
		creator.InstantsCreated = append(creator.InstantsCreated, instant.ID)
		tx.MarkDirty()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return instant, nil
}

// Purchase executes a validated credit transfer unlocking the instant for
// the buyer. Preconditions are checked in order, first failure wins, and a
// failed purchase leaves all state untouched. On success the whole unit is
// applied and persisted: credits deducted, ownership and badge recorded,
// buyer appended, fan rank credited. The creator's spendable balance is
// deliberately not incremented; the transfer shows up only in the fan rank.
func (s *instantService) Purchase(ctx context.Context, buyerID, instantID string, now time.Time) (*domain.Instant, *domain.User, error) {
	var (
		instant *domain.Instant
		buyer   *domain.User
	)
	err := s.store.Update(func(tx *store.Tx) error {
		refreshExpirations(tx, now)

		var err error
		instant, err = tx.InstantByID(instantID)
		if err != nil {
			return fmt.Errorf("purchase: instant %s: %w", instantID, err)
		}
		buyer, err = tx.UserByID(buyerID)
		if err != nil {
			return fmt.Errorf("purchase: buyer %s: %w", buyerID, err)
		}

		switch {
		case instant.IsExpired:
			return util.ErrExpired
		case instant.CreatorID == buyer.ID:
			return util.ErrSelfPurchase
		case instant.IsExclusive && len(instant.Buyers) > 0:
			return util.ErrExclusiveSold
		case instant.HasBuyer(buyer.ID):
			return util.ErrAlreadyOwned
		case buyer.Credits < instant.Price:
			return util.ErrInsufficientCredits
		}

		buyer.Credits -= instant.Price
		buyer.InstantsPurchased = append(buyer.InstantsPurchased, instant.ID)
		buyer.Badges = append(buyer.Badges, domain.Badge{
			InstantID: instant.ID,
			Exclusive: instant.IsExclusive,
		})
		instant.Buyers = append(instant.Buyers, buyer.ID)
		recordSpend(tx, instant.CreatorID, buyer.ID, instant.Price)
		tx.MarkDirty()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return instant, buyer, nil
}

// CheckIn grants the daily credits when the user is outside the cooldown
// window, otherwise leaves the user untouched. Always returns the current
// record.
func (s *instantService) CheckIn(ctx context.Context, userID string, now time.Time) (*domain.User, error) {
	var user *domain.User
	err := s.store.Update(func(tx *store.Tx) error {
		var err error
		user, err = tx.UserByID(userID)
		if err != nil {
			return fmt.Errorf("check-in: user %s: %w", userID, err)
		}
		if user.LastCheckIn != nil && now.Sub(*user.LastCheckIn) < CheckInCooldown {
			return nil
		}
		user.Credits += CheckInReward
		checkedIn := now
		user.LastCheckIn = &checkedIn
		tx.MarkDirty()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ActiveWall returns every non-expired instant after a lifecycle refresh,
// soonest-expiring first.
func (s *instantService) ActiveWall(ctx context.Context, now time.Time) ([]*domain.Instant, error) {
	var wall []*domain.Instant
	err := s.store.Update(func(tx *store.Tx) error {
		refreshExpirations(tx, now)
		for _, in := range tx.Instants() {
			if !in.IsExpired {
				wall = append(wall, in)
			}
		}
		sort.SliceStable(wall, func(a, b int) bool {
			return wall[a].ExpiresAt.Before(wall[b].ExpiresAt)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wall, nil
}

// InstantDetail returns the instant after a lifecycle refresh, with the
// media-visibility flag resolved for the viewer.
func (s *instantService) InstantDetail(ctx context.Context, viewerID, instantID string, now time.Time) (*InstantView, error) {
	var view *InstantView
	err := s.store.Update(func(tx *store.Tx) error {
		refreshExpirations(tx, now)
		instant, err := tx.InstantByID(instantID)
		if err != nil {
			return fmt.Errorf("instant detail: %s: %w", instantID, err)
		}
		view = &InstantView{Instant: instant, CanView: CanViewMedia(viewerID, instant)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// MediaAccess resolves the instant when the viewer may see its media.
// Expiry is the only thing that can close access, so a closed door reads
// as ErrExpired.
func (s *instantService) MediaAccess(ctx context.Context, viewerID, instantID string, now time.Time) (*domain.Instant, error) {
	var instant *domain.Instant
	err := s.store.Update(func(tx *store.Tx) error {
		refreshExpirations(tx, now)
		in, err := tx.InstantByID(instantID)
		if err != nil {
			return fmt.Errorf("media access: %s: %w", instantID, err)
		}
		if !CanViewMedia(viewerID, in) {
			return util.ErrExpired
		}
		instant = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return instant, nil
}

// Profile returns a creator's page: their instants in creation order,
// expired ones included, plus the top fans leaderboard.
func (s *instantService) Profile(ctx context.Context, username string) (*ProfileView, error) {
	var view *ProfileView
	err := s.store.View(func(tx *store.Tx) error {
		user, err := tx.UserByUsername(username)
		if err != nil {
			return fmt.Errorf("profile: user '%s': %w", username, err)
		}
		var created []*domain.Instant
		for _, in := range tx.Instants() {
			if in.CreatorID == user.ID {
				created = append(created, in)
			}
		}
		view = &ProfileView{
			User:     user,
			Instants: created,
			TopFans:  topFans(tx, user.ID, TopFansLimit),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// User retrieves a user record by id.
func (s *instantService) User(ctx context.Context, userID string) (*domain.User, error) {
	var user *domain.User
	err := s.store.View(func(tx *store.Tx) error {
		var err error
		user, err = tx.UserByID(userID)
		if err != nil {
			return fmt.Errorf("get user %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CanViewMedia decides whether a logged-in viewer may see an instant's
// media: the creator and buyers always can, and anyone can while the
// instant has not expired. The permissive preview of non-expired media is
// the intended policy.
func CanViewMedia(viewerID string, instant *domain.Instant) bool {
	if viewerID == instant.CreatorID {
		return true
	}
	if instant.HasBuyer(viewerID) {
		return true
	}
	return !instant.IsExpired
}
