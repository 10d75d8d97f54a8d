package handlers

import (
	"marketplace_webapp/internal/catalog"
	"marketplace_webapp/internal/claim"
	"marketplace_webapp/internal/effectiveness"
	"marketplace_webapp/internal/hatch"
	"marketplace_webapp/internal/repository"
	"marketplace_webapp/internal/tier"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Feed pushes events to connected activity-feed clients.
type Feed interface {
	Broadcast(v interface{})
}

type Handler struct {
	DB            *pgxpool.Pool
	Records       *repository.TierRecordRepository
	Profiles      *repository.ProfileRepository
	Activities    *repository.ActivityRepository
	TierService   *tier.Service
	ClaimService  *claim.Service
	HatchService  *hatch.Service
	Effectiveness *effectiveness.Calculator
	Catalog       *catalog.Client
	Feed          Feed
}

func NewHandler(db *pgxpool.Pool, tierSvc *tier.Service, claimSvc *claim.Service, hatchSvc *hatch.Service, calc *effectiveness.Calculator, cat *catalog.Client, feed Feed) *Handler {
	return &Handler{
		DB:            db,
		Records:       repository.NewTierRecordRepository(db),
		Profiles:      repository.NewProfileRepository(db),
		Activities:    repository.NewActivityRepository(db),
		TierService:   tierSvc,
		ClaimService:  claimSvc,
		HatchService:  hatchSvc,
		Effectiveness: calc,
		Catalog:       cat,
		Feed:          feed,
	}
}

// getAddress reads the chain address set by the JWT middleware.
func getAddress(c *gin.Context) (string, bool) {
	val, ok := c.Get("address")
	if !ok {
		return "", false
	}
	addr, ok := val.(string)
	return addr, ok && addr != ""
}

func (h *Handler) broadcast(v interface{}) {
	if h.Feed != nil {
		h.Feed.Broadcast(v)
	}
}
