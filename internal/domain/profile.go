package domain

// GameProfile holds the in-game progression counters used for newcomer
// claim eligibility checks.
type GameProfile struct {
	ID              int64  `db:"id" json:"id"`
	Address         string `db:"address" json:"address"`
	AccountLevel    int    `db:"account_level" json:"account_level"`
	QuestsCompleted int    `db:"quests_completed" json:"quests_completed"`
	PvPRating       int    `db:"pvp_rating" json:"pvp_rating"`
}
