package claim

import (
	"strings"

	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/tier"
)

// ClaimingCheck is the result of running every claim gate for a request.
// All three must pass before any token moves.
type ClaimingCheck struct {
	Claimable         bool  `json:"claimable"`
	OnCooldown        bool  `json:"on_cooldown"`
	WithinLimits      bool  `json:"within_limits"`
	CooldownRemaining int64 `json:"cooldown_remaining"` // seconds, 0 when off cooldown
}

func (c ClaimingCheck) Passed() bool {
	return c.Claimable && !c.OnCooldown && c.WithinLimits
}

// Check runs the claim gates against a record at a given instant. An
// address that has never claimed is off cooldown, and a cooldown ends
// exactly when the elapsed time reaches the tier's cooldown.
func Check(rec *domain.TierRecord, b tier.Benefits, currency string, amount float64, now int64) ClaimingCheck {
	chk := ClaimingCheck{Claimable: rec.CanClaim}

	last := rec.LastClaimTime(strings.ToLower(currency))
	if last > 0 && now-last < b.ClaimCooldown {
		chk.OnCooldown = true
		chk.CooldownRemaining = b.ClaimCooldown - (now - last)
	}

	if min, max, ok := b.ClaimLimits(currency); ok {
		chk.WithinLimits = amount >= min && amount <= max
	}

	return chk
}

// CooldownRemaining returns how many seconds remain before the address
// may claim the given currency again. Zero means claimable now.
func CooldownRemaining(rec *domain.TierRecord, b tier.Benefits, currency string, now int64) int64 {
	last := rec.LastClaimTime(strings.ToLower(currency))
	if last == 0 {
		return 0
	}
	if remaining := b.ClaimCooldown - (now - last); remaining > 0 {
		return remaining
	}
	return 0
}
