package tier

import (
	"errors"
	"strings"

	"marketplace_webapp/internal/domain"
)

var ErrUnknownTier = errors.New("unknown tier")

// ClaimRequirement is the progression floor a newcomer must reach before
// claiming is unlocked. Meeting any single field is enough.
type ClaimRequirement struct {
	AccountLevel    int `json:"account_level"`
	QuestsCompleted int `json:"quests_completed"`
	PvPRating       int `json:"pvp_rating"`
}

// Benefits is the static per-tier benefit sheet. Values may be rebalanced
// between seasons but never change at runtime.
type Benefits struct {
	ClaimFeePercent float64 `json:"claim_fee_percent"`
	MinXRECClaim    float64 `json:"min_xrec_claim"`
	MaxXRECClaim    float64 `json:"max_xrec_claim"`
	MinXRESClaim    float64 `json:"min_xres_claim"`
	MaxXRESClaim    float64 `json:"max_xres_claim"`
	// ClaimCooldown is in seconds and shared by both currencies.
	ClaimCooldown        int64   `json:"claim_cooldown"`
	BreedingDiscount     float64 `json:"breeding_discount"`
	MarketplaceFee       float64 `json:"marketplace_fee"`
	MintingEventTier     string  `json:"minting_event_tier"`
	BurningEventTier     string  `json:"burning_event_tier"`
	StakingTier          string  `json:"staking_tier"`
	AirdropTickets       int     `json:"airdrop_tickets"`
	ReferralRewards      float64 `json:"referral_rewards"`
	InGameEnergy         int     `json:"in_game_energy"`
}

// NewcomerClaimRequirement gates claiming for the newcomer tier only.
var NewcomerClaimRequirement = ClaimRequirement{
	AccountLevel:    60,
	QuestsCompleted: 1000,
	PvPRating:       2000,
}

var benefitsByTier = map[domain.Tier]Benefits{
	domain.TierNewcomer: {
		ClaimFeePercent:  4.5,
		MinXRECClaim:     10,
		MaxXRECClaim:     15,
		MinXRESClaim:     100,
		MaxXRESClaim:     150,
		ClaimCooldown:    345600, // 4 days
		BreedingDiscount: 0,
		MarketplaceFee:   5,
		MintingEventTier: "Iron",
		BurningEventTier: "Iron",
		StakingTier:      "Iron",
		AirdropTickets:   0,
		ReferralRewards:  0,
		InGameEnergy:     100,
	},
	domain.TierRustic: {
		ClaimFeePercent:  4.5,
		MinXRECClaim:     15,
		MaxXRECClaim:     30,
		MinXRESClaim:     150,
		MaxXRESClaim:     275,
		ClaimCooldown:    259200, // 3 days
		BreedingDiscount: 1,
		MarketplaceFee:   4.9,
		MintingEventTier: "Bronze",
		BurningEventTier: "Iron",
		StakingTier:      "Iron",
		AirdropTickets:   5,
		ReferralRewards:  2.5,
		InGameEnergy:     110,
	},
	domain.TierMerchant: {
		ClaimFeePercent:  4.4,
		MinXRECClaim:     45,
		MaxXRECClaim:     75,
		MinXRESClaim:     350,
		MaxXRESClaim:     600,
		ClaimCooldown:    259200,
		BreedingDiscount: 1.5,
		MarketplaceFee:   4.75,
		MintingEventTier: "Bronze",
		BurningEventTier: "Bronze",
		StakingTier:      "Bronze",
		AirdropTickets:   10,
		ReferralRewards:  3.75,
		InGameEnergy:     120,
	},
	domain.TierTycoon: {
		ClaimFeePercent:  4.3,
		MinXRECClaim:     100,
		MaxXRECClaim:     300,
		MinXRESClaim:     750,
		MaxXRESClaim:     1500,
		ClaimCooldown:    216000, // 2.5 days
		BreedingDiscount: 2.5,
		MarketplaceFee:   4.5,
		MintingEventTier: "Silver",
		BurningEventTier: "Silver",
		StakingTier:      "Bronze",
		AirdropTickets:   15,
		ReferralRewards:  5,
		InGameEnergy:     140,
	},
	domain.TierMagnate: {
		ClaimFeePercent:  4.2,
		MinXRECClaim:     250,
		MaxXRECClaim:     600,
		MinXRESClaim:     1250,
		MaxXRESClaim:     2500,
		ClaimCooldown:    216000,
		BreedingDiscount: 3.75,
		MarketplaceFee:   4.25,
		MintingEventTier: "Gold",
		BurningEventTier: "Silver",
		StakingTier:      "Silver",
		AirdropTickets:   25,
		ReferralRewards:  7.5,
		InGameEnergy:     165,
	},
	domain.TierGrandee: {
		ClaimFeePercent:  4,
		MinXRECClaim:     450,
		MaxXRECClaim:     800,
		MinXRESClaim:     2000,
		MaxXRESClaim:     5000,
		ClaimCooldown:    172800, // 2 days
		BreedingDiscount: 5,
		MarketplaceFee:   4,
		MintingEventTier: "Gold",
		BurningEventTier: "Gold",
		StakingTier:      "Gold",
		AirdropTickets:   40,
		ReferralRewards:  12.5,
		InGameEnergy:     200,
	},
}

// BenefitsFor returns the benefit sheet for a tier. The lookup is
// case-insensitive to match how tiers arrive from stored records.
func BenefitsFor(t domain.Tier) (Benefits, error) {
	b, ok := benefitsByTier[domain.Tier(strings.ToLower(string(t)))]
	if !ok {
		return Benefits{}, ErrUnknownTier
	}
	return b, nil
}

// ClaimLimits returns the min/max claim bounds for the given currency key
// ("xres" or "xrec").
func (b Benefits) ClaimLimits(currency string) (min, max float64, ok bool) {
	switch strings.ToLower(currency) {
	case "xres":
		return b.MinXRESClaim, b.MaxXRESClaim, true
	case "xrec":
		return b.MinXRECClaim, b.MaxXRECClaim, true
	}
	return 0, 0, false
}
