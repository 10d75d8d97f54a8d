package handlers

import (
	"errors"
	"net/http"
	"strings"

	"marketplace_webapp/internal/auth"
	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

type authRequest struct {
	Address         string `json:"address" binding:"required"`
	PlayerAccountID string `json:"player_account_id"`
}

func validAddress(addr string) bool {
	if len(addr) != 42 || !strings.HasPrefix(addr, "0x") {
		return false
	}
	for _, r := range addr[2:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Auth issues a session token for a chain address, creating the webapp
// record on first contact.
func (h *Handler) Auth(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	address := strings.ToLower(req.Address)
	if !validAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}

	rec, err := h.Records.GetByAddress(c.Request.Context(), address)
	if errors.Is(err, repository.ErrNotFound) {
		rec = &domain.TierRecord{
			Address:         address,
			WebAppTier:      domain.TierNewcomer,
			PlayerAccountID: req.PlayerAccountID,
		}
		if err := h.Records.Create(c.Request.Context(), rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create record"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load record"})
		return
	}

	token, err := auth.GenerateJWT(address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"record": rec,
	})
}
