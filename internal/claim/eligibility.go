package claim

import (
	"context"
	"errors"
	"strings"

	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/logger"
	"marketplace_webapp/internal/playerdata"
	"marketplace_webapp/internal/repository"
	"marketplace_webapp/internal/tier"
)

// UpdateClaimEligibility recomputes and persists the can_claim flag.
// Claiming needs a linked game account; on top of that, every tier above
// newcomer is eligible outright while newcomers must meet at least one
// progression requirement. The write only happens when the flag actually
// flips, so repeated sweeps are cheap and a demotion revokes eligibility
// the same way a promotion grants it.
func (s *Service) UpdateClaimEligibility(ctx context.Context, address string) (bool, error) {
	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return false, err
	}

	eligible := false
	if rec.PlayerAccountID != "" {
		eligible = rec.WebAppTier.Rank() > domain.TierNewcomer.Rank()
		if !eligible {
			profile, err := s.profiles.GetByAddress(ctx, address)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				// No progression data yet, stays ineligible.
			case err != nil:
				return false, err
			default:
				req := tier.NewcomerClaimRequirement
				eligible = profile.AccountLevel >= req.AccountLevel ||
					profile.QuestsCompleted >= req.QuestsCompleted ||
					profile.PvPRating >= req.PvPRating
			}
		}
	}

	if eligible != rec.CanClaim {
		if err := s.records.SetClaimEligibility(ctx, address, eligible); err != nil {
			return false, err
		}
		logger.WithAddress(address).Info("claim eligibility changed",
			"tier", rec.WebAppTier, "eligible", eligible)
	}
	return eligible, nil
}

// UpdateDepositEligibility recomputes and persists the can_deposit flag.
// Depositing requires a game account linked back to the same address, so
// off-chain credits can never land in someone else's account.
func (s *Service) UpdateDepositEligibility(ctx context.Context, address string) (bool, error) {
	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return false, err
	}

	eligible := false
	if rec.PlayerAccountID != "" {
		linked, err := s.players.ChainAddress(ctx, rec.PlayerAccountID)
		switch {
		case errors.Is(err, playerdata.ErrAccountNotLinked):
			// Account exists but never linked a wallet.
		case err != nil:
			return false, err
		default:
			eligible = strings.EqualFold(linked, rec.Address)
		}
	}

	if eligible != rec.CanDeposit {
		if err := s.records.SetDepositEligibility(ctx, address, eligible); err != nil {
			return false, err
		}
		logger.WithAddress(address).Info("deposit eligibility changed", "eligible", eligible)
	}
	return eligible, nil
}
