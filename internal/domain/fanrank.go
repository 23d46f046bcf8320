package domain

// FanRank is a derived aggregate: cumulative credits one fan has spent
// on one creator. Unique per (creatorId, fanId) pair, created lazily on
// the first purchase between the pair, monotonically increasing.
// JSON field names match the persisted snapshot layout and must not change.
type FanRank struct {
	CreatorID    string `json:"creatorId"`
	FanID        string `json:"fanId"`
	TotalCredits int    `json:"totalCredits"`
}
