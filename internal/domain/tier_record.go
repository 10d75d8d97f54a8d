package domain

import "time"

// Tier is a named membership bracket granting claim limits, fees and cooldowns.
type Tier string

const (
	TierNewcomer Tier = "newcomer"
	TierRustic   Tier = "rustic"
	TierMerchant Tier = "merchant"
	TierTycoon   Tier = "tycoon"
	TierMagnate  Tier = "magnate"
	TierGrandee  Tier = "grandee"
)

// Rank orders tiers from newcomer (0) to grandee (5). Unknown tiers rank -1.
func (t Tier) Rank() int {
	switch t {
	case TierNewcomer:
		return 0
	case TierRustic:
		return 1
	case TierMerchant:
		return 2
	case TierTycoon:
		return 3
	case TierMagnate:
		return 4
	case TierGrandee:
		return 5
	default:
		return -1
	}
}

// TierRecord is the per-address web app record. The tier field is a pure
// function of owned NFTs, reward currency and trading volume; only the
// evaluator writes it.
type TierRecord struct {
	ID                   int64     `db:"id" json:"id"`
	Address              string    `db:"address" json:"address"`
	WebAppTier           Tier      `db:"web_app_tier" json:"web_app_tier"`
	MonthlyTradingVolume float64   `db:"monthly_trading_volume" json:"monthly_trading_volume"`
	TotalTradingVolume   float64   `db:"total_trading_volume" json:"total_trading_volume"`
	TotalXRESClaimed     float64   `db:"total_xres_claimed" json:"total_xres_claimed"`
	TotalXRECClaimed     float64   `db:"total_xrec_claimed" json:"total_xrec_claimed"`
	TotalRESDeposited    float64   `db:"total_res_deposited" json:"total_res_deposited"`
	TotalRECDeposited    float64   `db:"total_rec_deposited" json:"total_rec_deposited"`
	LastXRESClaimTime    int64     `db:"last_xres_claim_time" json:"last_xres_claim_time"` // unix seconds, 0 = never
	LastXRECClaimTime    int64     `db:"last_xrec_claim_time" json:"last_xrec_claim_time"`
	CanClaim             bool      `db:"can_claim" json:"can_claim"`
	CanDeposit           bool      `db:"can_deposit" json:"can_deposit"`
	PlayerAccountID      string    `db:"player_account_id" json:"player_account_id,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// LastClaimTime returns the last claim timestamp for the given currency key
// ("xres" or "xrec"). Unknown keys return 0.
func (r *TierRecord) LastClaimTime(currency string) int64 {
	switch currency {
	case "xres":
		return r.LastXRESClaimTime
	case "xrec":
		return r.LastXRECClaimTime
	}
	return 0
}
