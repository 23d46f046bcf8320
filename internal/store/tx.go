package store

import (
	"instantshare/internal/domain"
	"instantshare/internal/util"
)

// Tx is one locked view of the store state. Lookups return live pointers;
// a caller that mutates through them must call MarkDirty so Update knows
// to rewrite the snapshot.
type Tx struct {
	state *snapshot
	dirty bool
}

// MarkDirty flags the state as changed so Update persists it.
func (tx *Tx) MarkDirty() { tx.dirty = true }

// UserByID retrieves a user by id.
func (tx *Tx) UserByID(id string) (*domain.User, error) {
	for _, u := range tx.state.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, util.ErrNotFound
}

// UserByUsername retrieves a user by exact, case-sensitive username.
func (tx *Tx) UserByUsername(username string) (*domain.User, error) {
	for _, u := range tx.state.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, util.ErrNotFound
}

// InstantByID retrieves an instant by id.
func (tx *Tx) InstantByID(id string) (*domain.Instant, error) {
	for _, i := range tx.state.Instants {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, util.ErrNotFound
}

// Instants returns all instants in insertion (creation) order.
func (tx *Tx) Instants() []*domain.Instant {
	return tx.state.Instants
}

// FanRanksByCreator returns the creator's fan ranks in insertion order.
func (tx *Tx) FanRanksByCreator(creatorID string) []*domain.FanRank {
	var ranks []*domain.FanRank
	for _, fr := range tx.state.FanRanks {
		if fr.CreatorID == creatorID {
			ranks = append(ranks, fr)
		}
	}
	return ranks
}

// FanRank retrieves the rank row for a (creator, fan) pair.
func (tx *Tx) FanRank(creatorID, fanID string) (*domain.FanRank, error) {
	for _, fr := range tx.state.FanRanks {
		if fr.CreatorID == creatorID && fr.FanID == fanID {
			return fr, nil
		}
	}
	return nil, util.ErrNotFound
}

// AddUser appends a new user and marks the state dirty.
func (tx *Tx) AddUser(u *domain.User) {
	tx.state.Users = append(tx.state.Users, u)
	tx.dirty = true
}

// AddInstant appends a new instant and marks the state dirty.
func (tx *Tx) AddInstant(i *domain.Instant) {
	tx.state.Instants = append(tx.state.Instants, i)
	tx.dirty = true
}

// AddFanRank appends a new fan rank row and marks the state dirty.
func (tx *Tx) AddFanRank(fr *domain.FanRank) {
	tx.state.FanRanks = append(tx.state.FanRanks, fr)
	tx.dirty = true
}
