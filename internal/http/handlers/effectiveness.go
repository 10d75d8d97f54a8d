package handlers

import (
	"errors"
	"net/http"

	"marketplace_webapp/internal/effectiveness"

	"github.com/gin-gonic/gin"
)

// AttackEffectiveness lists the types an attacker's type pair is strong
// and weak against.
func (h *Handler) AttackEffectiveness(c *gin.Context) {
	first := c.Query("first")
	second := c.Query("second")

	res, err := h.Effectiveness.Attack(c.Request.Context(), first, second)
	if errors.Is(err, effectiveness.ErrUnknownType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown type"})
		return
	} else if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "type matrix unavailable"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// DefenseEffectiveness lists the attacking types a defender's type pair
// resists and is vulnerable to.
func (h *Handler) DefenseEffectiveness(c *gin.Context) {
	first := c.Query("first")
	second := c.Query("second")

	res, err := h.Effectiveness.Defense(c.Request.Context(), first, second)
	if errors.Is(err, effectiveness.ErrUnknownType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown type"})
		return
	} else if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "type matrix unavailable"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// Types lists every elemental type in canonical order.
func (h *Handler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": effectiveness.AllTypes})
}
