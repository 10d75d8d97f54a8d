package domain

import "time"

// Activity is a marketplace event recorded for the live feed.
type Activity struct {
	ID        int64                  `db:"id" json:"id"`
	Address   string                 `db:"address" json:"address"`
	Kind      string                 `db:"kind" json:"kind"` // hatch, claim, deposit, tier_change
	Currency  string                 `db:"currency" json:"currency,omitempty"`
	Amount    float64                `db:"amount" json:"amount,omitempty"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

const (
	ActivityHatch      = "hatch"
	ActivityClaim      = "claim"
	ActivityDeposit    = "deposit"
	ActivityTierChange = "tier_change"
)
