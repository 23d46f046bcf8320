package service

import (
	"sort"

	"instantshare/internal/domain"
	"instantshare/internal/store"
	"instantshare/internal/util"
)

// recordSpend adds amount to the cumulative total the fan has spent on the
// creator, creating the rank row on the pair's first purchase. Amount is
// always a positive purchase price.
func recordSpend(tx *store.Tx, creatorID, fanID string, amount int) {
	fr, err := tx.FanRank(creatorID, fanID)
	if util.IsError(err, util.ErrNotFound) {
		tx.AddFanRank(&domain.FanRank{
			CreatorID:    creatorID,
			FanID:        fanID,
			TotalCredits: amount,
		})
		return
	}
	fr.TotalCredits += amount
	tx.MarkDirty()
}

// topFans returns the creator's fan ranks sorted by total spend descending,
// ties kept in insertion order, truncated to limit.
func topFans(tx *store.Tx, creatorID string, limit int) []*domain.FanRank {
	ranks := tx.FanRanksByCreator(creatorID)
	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].TotalCredits > ranks[b].TotalCredits
	})
	if limit >= 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}
