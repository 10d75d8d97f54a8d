package tier

import (
	"context"
	"fmt"

	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/logger"
)

// Records is the slice of the record store the evaluator needs.
type Records interface {
	GetByAddress(ctx context.Context, address string) (*domain.TierRecord, error)
	UpdateTier(ctx context.Context, address string, tier domain.Tier) error
}

// ChainReader reads ownership counters from the chain ledger.
type ChainReader interface {
	NFTBalanceOf(ctx context.Context, address string) (int, error)
	RewardBalanceOf(ctx context.Context, address string) (float64, error)
}

// Service recomputes tiers on demand. Tiers are never pushed; callers
// re-invoke Refresh after any counter change.
type Service struct {
	records Records
	chain   ChainReader
}

func NewService(records Records, chain ChainReader) *Service {
	return &Service{records: records, chain: chain}
}

// Refresh recomputes the tier for an address from live counters and
// persists it. Returns the new tier.
func (s *Service) Refresh(ctx context.Context, address string) (domain.Tier, error) {
	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return "", err
	}

	ownedNFTs, err := s.chain.NFTBalanceOf(ctx, address)
	if err != nil {
		return "", fmt.Errorf("nft balance: %w", err)
	}

	ownedCurrency, err := s.chain.RewardBalanceOf(ctx, address)
	if err != nil {
		return "", fmt.Errorf("reward balance: %w", err)
	}

	updated := Evaluate(Counters{
		OwnedNFTs:         ownedNFTs,
		OwnedCurrency:     ownedCurrency,
		DepositedCurrency: rec.TotalRESDeposited,
		MonthlyVolume:     rec.MonthlyTradingVolume,
	})

	if err := s.records.UpdateTier(ctx, address, updated); err != nil {
		return "", err
	}

	if updated != rec.WebAppTier {
		logger.WithAddress(address).Info("tier changed",
			"from", rec.WebAppTier, "to", updated)
	}

	return updated, nil
}

// Current returns the stored tier for an address, defaulting an empty
// tier to newcomer and persisting the default.
func (s *Service) Current(ctx context.Context, address string) (domain.Tier, error) {
	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return "", err
	}

	if rec.WebAppTier == "" {
		if err := s.records.UpdateTier(ctx, address, domain.TierNewcomer); err != nil {
			return "", err
		}
		return domain.TierNewcomer, nil
	}

	return rec.WebAppTier, nil
}
