package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"instantshare/internal/domain"
)

// snapshot is the persisted state layout: one document holding the three
// collections. Field names round-trip exactly for compatibility with
// existing stored data.
type snapshot struct {
	Users    []*domain.User    `json:"users"`
	Instants []*domain.Instant `json:"instants"`
	FanRanks []*domain.FanRank `json:"fanRanks"`
}

// Store holds the full set of Users, Instants and FanRanks in memory and
// flushes the complete state to a single JSON document on every successful
// mutation. A single mutex serializes every read-modify-persist region, so
// callers see one consistent snapshot per operation.
type Store struct {
	mu    sync.Mutex
	path  string
	state snapshot
}

// Open loads the snapshot at path into memory. A missing file yields an
// empty store; a document that fails to decode is a startup error, not a
// silent reset to empty state.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: failed to create directory %s: %w", dir, err)
		}
	}
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.state = snapshot{}
			return s, nil
		}
		return nil, fmt.Errorf("store: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("store: corrupt snapshot %s: %w", path, err)
	}
	return s, nil
}

// View runs fn against the in-memory state under the store lock.
// Nothing is persisted, even if fn mutates through the Tx.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{state: &s.state})
}

// Update runs fn against the in-memory state under the store lock and, when
// fn succeeds and reported a change, rewrites the full snapshot. A failed fn
// must not have mutated state; validation happens before any write.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &Tx{state: &s.state}
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}
	if err := s.persist(); err != nil {
		return fmt.Errorf("store: failed to persist snapshot: %w", err)
	}
	return nil
}

// Close flushes the current state one final time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(); err != nil {
		return fmt.Errorf("store: final flush failed: %w", err)
	}
	return nil
}

// persist writes the whole document. Caller holds the lock. Best effort:
// no fsync or rename swap, matching the snapshot's durability contract.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
