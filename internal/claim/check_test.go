package claim

import (
	"testing"

	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/tier"
)

func TestCheckCooldown(t *testing.T) {
	benefits, err := tier.BenefitsFor(domain.TierRustic)
	if err != nil {
		t.Fatal(err)
	}

	now := int64(1_000_000_000)
	tests := []struct {
		name          string
		lastClaim     int64
		wantCooldown  bool
		wantRemaining int64
	}{
		{name: "never claimed", lastClaim: 0},
		{name: "mid cooldown", lastClaim: now - 100, wantCooldown: true, wantRemaining: benefits.ClaimCooldown - 100},
		{name: "one second short", lastClaim: now - benefits.ClaimCooldown + 1, wantCooldown: true, wantRemaining: 1},
		{name: "exactly elapsed", lastClaim: now - benefits.ClaimCooldown},
		{name: "long expired", lastClaim: now - 10*benefits.ClaimCooldown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &domain.TierRecord{
				Address:           testAddress,
				WebAppTier:        domain.TierRustic,
				CanClaim:          true,
				LastXRESClaimTime: tt.lastClaim,
			}
			chk := Check(rec, benefits, "xres", 200, now)
			if chk.OnCooldown != tt.wantCooldown {
				t.Errorf("OnCooldown = %v, want %v", chk.OnCooldown, tt.wantCooldown)
			}
			if chk.CooldownRemaining != tt.wantRemaining {
				t.Errorf("CooldownRemaining = %d, want %d", chk.CooldownRemaining, tt.wantRemaining)
			}
		})
	}
}

func TestCheckPerCurrencyCooldowns(t *testing.T) {
	benefits, _ := tier.BenefitsFor(domain.TierRustic)
	now := int64(1_000_000_000)

	rec := &domain.TierRecord{
		Address:           testAddress,
		WebAppTier:        domain.TierRustic,
		CanClaim:          true,
		LastXRESClaimTime: now - 100, // on cooldown for xRES only
	}

	if chk := Check(rec, benefits, "xres", 200, now); !chk.OnCooldown {
		t.Error("xres should be on cooldown")
	}
	if chk := Check(rec, benefits, "xrec", 20, now); chk.OnCooldown {
		t.Error("xrec cooldown must be independent of xres")
	}
}

func TestCheckLimits(t *testing.T) {
	benefits, _ := tier.BenefitsFor(domain.TierRustic)
	rec := &domain.TierRecord{Address: testAddress, WebAppTier: domain.TierRustic, CanClaim: true}

	for _, tt := range []struct {
		amount float64
		want   bool
	}{
		{149, false},
		{150, true}, // inclusive floor
		{275, true}, // inclusive ceiling
		{276, false},
	} {
		chk := Check(rec, benefits, "xres", tt.amount, 0)
		if chk.WithinLimits != tt.want {
			t.Errorf("amount %v: WithinLimits = %v, want %v", tt.amount, chk.WithinLimits, tt.want)
		}
	}
}

func TestCooldownRemaining(t *testing.T) {
	benefits, _ := tier.BenefitsFor(domain.TierGrandee)
	now := int64(5_000_000)

	rec := &domain.TierRecord{Address: testAddress, LastXRECClaimTime: now - 1000}
	if got := CooldownRemaining(rec, benefits, "xrec", now); got != benefits.ClaimCooldown-1000 {
		t.Errorf("remaining = %d, want %d", got, benefits.ClaimCooldown-1000)
	}

	fresh := &domain.TierRecord{Address: testAddress}
	if got := CooldownRemaining(fresh, benefits, "xrec", now); got != 0 {
		t.Errorf("remaining for fresh record = %d, want 0", got)
	}
}
