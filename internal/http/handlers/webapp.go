package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace_webapp/internal/claim"
	"marketplace_webapp/internal/repository"
	"marketplace_webapp/internal/tier"

	"github.com/gin-gonic/gin"
)

// WebAppData aggregates everything the frontend needs in one round trip.
func (h *Handler) WebAppData(c *gin.Context) {
	address, ok := getAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rec, err := h.Records.GetByAddress(c.Request.Context(), address)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load record"})
		return
	}

	benefits, err := tier.BenefitsFor(rec.WebAppTier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown tier on record"})
		return
	}

	now := time.Now().Unix()
	resp := gin.H{
		"record":   rec,
		"benefits": benefits,
		"cooldowns": gin.H{
			"xres": claim.CooldownRemaining(rec, benefits, "xres", now),
			"xrec": claim.CooldownRemaining(rec, benefits, "xrec", now),
		},
	}

	if profile, err := h.Profiles.GetByAddress(c.Request.Context(), address); err == nil {
		resp["profile"] = profile
	}

	// Balance snapshot is best effort; a ledger outage should not blank
	// the whole dashboard.
	if overview, err := h.ClaimService.BalanceOverview(c.Request.Context(), address); err == nil {
		resp["balances"] = overview
	}

	c.JSON(http.StatusOK, resp)
}

// Tier returns the stored tier and its benefit sheet.
func (h *Handler) Tier(c *gin.Context) {
	address, ok := getAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	current, err := h.TierService.Current(c.Request.Context(), address)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve tier"})
		return
	}

	benefits, err := tier.BenefitsFor(current)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown tier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tier": current, "benefits": benefits})
}

// RefreshTier recomputes the tier from live counters, then recomputes
// both eligibility flags against the new tier.
func (h *Handler) RefreshTier(c *gin.Context) {
	address, ok := getAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	updated, err := h.TierService.Refresh(c.Request.Context(), address)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to refresh tier"})
		return
	}

	canClaim, err := h.ClaimService.UpdateClaimEligibility(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update claim eligibility"})
		return
	}
	canDeposit, err := h.ClaimService.UpdateDepositEligibility(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update deposit eligibility"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tier":        updated,
		"can_claim":   canClaim,
		"can_deposit": canDeposit,
	})
}

// ClaimCooldown reports remaining cooldown seconds for a currency.
func (h *Handler) ClaimCooldown(c *gin.Context) {
	address, ok := getAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	currency := strings.ToLower(c.Param("currency"))
	chk, err := h.ClaimService.CheckClaim(c.Request.Context(), address, currency, 0)
	switch {
	case errors.Is(err, claim.ErrUnknownCurrency):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown currency"})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check cooldown"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currency":           currency,
		"on_cooldown":        chk.OnCooldown,
		"cooldown_remaining": chk.CooldownRemaining,
	})
}
