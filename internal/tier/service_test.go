package tier

import (
	"context"
	"testing"

	"marketplace_webapp/internal/domain"
)

type stubRecords struct {
	rec     *domain.TierRecord
	updated domain.Tier
}

func (s *stubRecords) GetByAddress(context.Context, string) (*domain.TierRecord, error) {
	cp := *s.rec
	return &cp, nil
}

func (s *stubRecords) UpdateTier(_ context.Context, _ string, t domain.Tier) error {
	s.updated = t
	return nil
}

type stubChain struct {
	nfts     int
	currency float64
}

func (s *stubChain) NFTBalanceOf(context.Context, string) (int, error)        { return s.nfts, nil }
func (s *stubChain) RewardBalanceOf(context.Context, string) (float64, error) { return s.currency, nil }

func TestRefreshPersistsEvaluatedTier(t *testing.T) {
	records := &stubRecords{rec: &domain.TierRecord{
		Address:              "0xabc",
		WebAppTier:           domain.TierNewcomer,
		MonthlyTradingVolume: 6000,
	}}
	svc := NewService(records, &stubChain{nfts: 0, currency: 0})

	got, err := svc.Refresh(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got != domain.TierMerchant {
		t.Errorf("tier = %s, want merchant (volume branch)", got)
	}
	if records.updated != domain.TierMerchant {
		t.Errorf("persisted tier = %s, want merchant", records.updated)
	}
}

func TestRefreshUsesChainCounters(t *testing.T) {
	records := &stubRecords{rec: &domain.TierRecord{Address: "0xabc", WebAppTier: domain.TierNewcomer}}
	svc := NewService(records, &stubChain{nfts: 3, currency: 0})

	got, err := svc.Refresh(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got != domain.TierRustic {
		t.Errorf("tier = %s, want rustic for 3 owned NFTs", got)
	}
}

func TestCurrentDefaultsEmptyTier(t *testing.T) {
	records := &stubRecords{rec: &domain.TierRecord{Address: "0xabc"}}
	svc := NewService(records, &stubChain{})

	got, err := svc.Current(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != domain.TierNewcomer {
		t.Errorf("tier = %s, want newcomer default", got)
	}
	if records.updated != domain.TierNewcomer {
		t.Errorf("default not persisted, got %q", records.updated)
	}
}
