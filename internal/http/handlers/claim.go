package handlers

import (
	"errors"
	"net/http"
	"strings"

	"marketplace_webapp/internal/claim"
	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/http/middleware"
	"marketplace_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

type claimRequest struct {
	Currency string  `json:"currency" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
}

type depositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// claimStatus maps claim-flow errors to HTTP statuses. Gate failures are
// the caller's fault; chain inconsistencies are upstream failures.
func claimStatus(err error) int {
	switch {
	case errors.Is(err, claim.ErrUnknownCurrency),
		errors.Is(err, claim.ErrOutsideLimits):
		return http.StatusBadRequest
	case errors.Is(err, claim.ErrNotEligible),
		errors.Is(err, claim.ErrNoLinkedAccount):
		return http.StatusForbidden
	case errors.Is(err, claim.ErrOnCooldown):
		return http.StatusTooManyRequests
	case errors.Is(err, claim.ErrInsufficientBalance),
		errors.Is(err, claim.ErrInsufficientAllowance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, claim.ErrMintNotReflected),
		errors.Is(err, claim.ErrTransferNotReflected):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Claim converts off-chain reward balance to on-chain tokens.
func (h *Handler) Claim(c *gin.Context) {
	address, ok := getAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency and amount are required"})
		return
	}
	currency := strings.ToLower(req.Currency)

	res, err := h.ClaimService.ClaimCurrency(c.Request.Context(), address, currency, req.Amount)
	if err != nil {
		middleware.ClaimsTotal.WithLabelValues(currency, "rejected").Inc()
		c.JSON(claimStatus(err), gin.H{"error": err.Error()})
		return
	}

	middleware.ClaimsTotal.WithLabelValues(currency, "ok").Inc()
	h.broadcast(gin.H{
		"kind":     domain.ActivityClaim,
		"address":  address,
		"currency": currency,
		"amount":   req.Amount,
	})

	c.JSON(http.StatusOK, res)
}

// Deposit moves on-chain tokens to the custodian and credits the
// off-chain balance.
func (h *Handler) Deposit(c *gin.Context) {
	address, ok := getAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	res, err := h.ClaimService.DepositCurrency(c.Request.Context(), address, req.Amount)
	if err != nil {
		middleware.DepositsTotal.WithLabelValues("rejected").Inc()
		c.JSON(claimStatus(err), gin.H{"error": err.Error()})
		return
	}

	middleware.DepositsTotal.WithLabelValues("ok").Inc()
	h.broadcast(gin.H{
		"kind":    domain.ActivityDeposit,
		"address": address,
		"amount":  req.Amount,
	})

	c.JSON(http.StatusOK, res)
}
