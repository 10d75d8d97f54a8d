package http

import (
	"os"
	"strconv"
	"time"

	"marketplace_webapp/internal/http/handlers"
	"marketplace_webapp/internal/http/middleware"
	"marketplace_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, h *handlers.Handler, hub *ws.Hub, version string) {
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 30
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}

	// Token-moving endpoints get a tighter per-address window.
	moveRateLimit := 10
	if v := os.Getenv("MOVE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			moveRateLimit = n
		}
	}

	// Health checks and metrics (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth
	v1.POST("/auth", middleware.RedisRateLimit(authRateLimit, time.Minute), h.Auth)

	// Aggregate and tier endpoints
	v1.GET("/webapp", middleware.JWT(), h.WebAppData)
	v1.GET("/tier", middleware.JWT(), h.Tier)
	v1.POST("/tier/refresh", middleware.JWT(), h.RefreshTier)
	v1.GET("/claim/:currency/cooldown", middleware.JWT(), h.ClaimCooldown)

	// Token movement, serialised per address on top of the rate limit
	moveRL := middleware.AddressRateLimit(moveRateLimit, time.Minute)
	v1.POST("/claim", middleware.JWT(), moveRL, h.Claim)
	v1.POST("/deposit", middleware.JWT(), moveRL, h.Deposit)

	// Hatching
	v1.POST("/hatch", middleware.JWT(), moveRL, h.Hatch)

	// Type effectiveness
	v1.GET("/types", h.Types)
	v1.GET("/effectiveness/attack", h.AttackEffectiveness)
	v1.GET("/effectiveness/defense", h.DefenseEffectiveness)

	// Catalog and feed
	v1.GET("/genus/:name", h.Genus)
	v1.GET("/activity", h.RecentActivity)

	// WebSocket activity feed; upgrades sit outside the /api/v1 group, so
	// they get their own in-process cap
	r.GET("/ws", middleware.SimpleRateLimit(authRateLimit, time.Minute), ws.HandleFeed(hub))
}
