package handlers

import (
	"net/http"

	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/hatch"
	"marketplace_webapp/internal/http/middleware"
	"marketplace_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

// Hatch rolls a full trait set for a new creature and records it in the
// activity feed.
func (h *Handler) Hatch(c *gin.Context) {
	address, ok := getAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	traits, err := h.HatchService.Hatch(c.Request.Context())
	if err != nil {
		logger.WithAddress(address).Error("hatch failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "hatch failed"})
		return
	}

	fertility, err := hatch.FertilityDeduction(traits.Rarity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown rarity"})
		return
	}

	middleware.HatchesTotal.WithLabelValues(string(traits.Rarity)).Inc()

	activity := &domain.Activity{
		Address: address,
		Kind:    domain.ActivityHatch,
		Meta: map[string]interface{}{
			"genus":    traits.Genus,
			"rarity":   traits.Rarity,
			"mutation": traits.Mutation,
		},
	}
	if err := h.Activities.Create(c.Request.Context(), activity); err != nil {
		logger.WithAddress(address).Warn("activity write failed", "error", err)
	}
	h.broadcast(gin.H{
		"kind":    domain.ActivityHatch,
		"address": address,
		"genus":   traits.Genus,
		"rarity":  traits.Rarity,
	})

	c.JSON(http.StatusOK, gin.H{
		"traits":              traits,
		"fertility_deduction": fertility,
	})
}
