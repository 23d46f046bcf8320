package service

import (
	"time"

	"instantshare/internal/store"
)

// refreshExpirations flips isExpired for every instant whose expiry time
// has passed as of now. Idempotent: repeated calls with non-decreasing now
// produce the same end state, and no instant is ever un-expired or removed.
// Returns the number of instants flipped.
func refreshExpirations(tx *store.Tx, now time.Time) int {
	flipped := 0
	for _, in := range tx.Instants() {
		if !in.IsExpired && !in.ExpiresAt.After(now) {
			in.IsExpired = true
			flipped++
		}
	}
	if flipped > 0 {
		tx.MarkDirty()
	}
	return flipped
}
