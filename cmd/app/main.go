package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace_webapp/internal/auth"
	"marketplace_webapp/internal/catalog"
	"marketplace_webapp/internal/chain"
	"marketplace_webapp/internal/claim"
	"marketplace_webapp/internal/config"
	"marketplace_webapp/internal/db"
	"marketplace_webapp/internal/effectiveness"
	"marketplace_webapp/internal/hatch"
	httpServer "marketplace_webapp/internal/http"
	"marketplace_webapp/internal/http/handlers"
	"marketplace_webapp/internal/http/middleware"
	"marketplace_webapp/internal/lock"
	"marketplace_webapp/internal/logger"
	"marketplace_webapp/internal/playerdata"
	"marketplace_webapp/internal/repository"
	"marketplace_webapp/internal/scheduler"
	"marketplace_webapp/internal/tier"
	"marketplace_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

const version = "1.2.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	auth.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	// Upstream clients
	ledger := chain.NewClient(chain.Config{
		BaseURL:        cfg.ChainRPCURL,
		APIKey:         cfg.ChainAPIKey,
		NFTContract:    cfg.NFTContract,
		RewardContract: cfg.RewardContract,
		Timeout:        cfg.UpstreamTimeout,
	})
	cat := catalog.NewClient(catalog.Config{
		Token:         cfg.CatalogToken,
		TypesTable:    cfg.TypesTableID,
		PediaTable:    cfg.PediaTableID,
		PassivesTable: cfg.PassivesTableID,
	})
	players := playerdata.NewClient(playerdata.Config{
		TitleID:   cfg.PlayerAPITitleID,
		SecretKey: cfg.PlayerAPISecretKey,
		Timeout:   cfg.UpstreamTimeout,
	})

	// Repositories
	records := repository.NewTierRecordRepository(dbPool)
	profiles := repository.NewProfileRepository(dbPool)
	activities := repository.NewActivityRepository(dbPool)

	// Redis backs both the rate limiter and the claim locks; without it
	// both fall back to in-process behavior.
	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	var scope lock.Scope
	if rc := middleware.RedisRateLimitClient(); rc != nil {
		scope = lock.NewRedisScope(rc, 30*time.Second)
	} else {
		logger.Warn("redis unavailable, claim locks are process-local")
		scope = lock.NewLocalScope()
	}

	// Core services
	tierSvc := tier.NewService(records, ledger)
	claimSvc := claim.NewService(records, profiles, ledger, players, activities, scope, cfg.CustodianAddress)
	hatchSvc := hatch.NewService(hatch.NewRandomizer(hatch.DefaultRNG(), cat), cat)
	calc := effectiveness.NewCalculator(cat)

	hub := ws.NewHub()
	h := handlers.NewHandler(dbPool, tierSvc, claimSvc, hatchSvc, calc, cat, hub)

	sched := scheduler.New(records, tierSvc, claimSvc,
		cfg.TierRefreshInterval, cfg.SchedulerBatchSize, cfg.VolumeResetEnabled)
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, dbPool, h, hub, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
