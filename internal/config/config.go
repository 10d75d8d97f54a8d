package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"marketplace_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Chain ledger (custodial signer service)
	ChainRPCURL      string
	ChainAPIKey      string
	NFTContract      string
	RewardContract   string
	CustodianAddress string

	// Content catalog (Notion)
	CatalogToken    string
	TypesTableID    string
	PediaTableID    string
	PassivesTableID string

	// Player account API
	PlayerAPITitleID   string
	PlayerAPISecretKey string

	// Redis (rate limiting + claim locks)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Budget for every external call
	UpstreamTimeout time.Duration

	// Scheduler
	TierRefreshInterval time.Duration
	VolumeResetEnabled  bool
	SchedulerBatchSize  int

	LogLevel string
	LogJSON  bool
}

// Load reads config from env. Missing required values abort startup.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	rpcURL := os.Getenv("CHAIN_RPC_URL")
	if rpcURL == "" {
		logger.Fatal("CHAIN_RPC_URL is not set")
	}

	nftContract := os.Getenv("NFT_CONTRACT_ADDRESS")
	if nftContract == "" {
		logger.Fatal("NFT_CONTRACT_ADDRESS is not set")
	}

	rewardContract := os.Getenv("REWARD_CONTRACT_ADDRESS")
	if rewardContract == "" {
		logger.Fatal("REWARD_CONTRACT_ADDRESS is not set")
	}

	custodian := os.Getenv("CUSTODIAN_ADDRESS")
	if custodian == "" {
		logger.Fatal("CUSTODIAN_ADDRESS is not set")
	}

	catalogToken := os.Getenv("CATALOG_TOKEN")
	if catalogToken == "" {
		logger.Fatal("CATALOG_TOKEN is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	upstreamTimeout := 15 * time.Second
	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			upstreamTimeout = time.Duration(n) * time.Second
		}
	}

	// the tier sweep should run a few times a day
	tierRefresh := 8 * time.Hour
	if v := os.Getenv("TIER_REFRESH_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tierRefresh = time.Duration(n) * time.Second
		}
	}

	batchSize := 100
	if v := os.Getenv("SCHEDULER_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			batchSize = n
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:             port,
		DatabaseURL:         dbURL,
		JWTSecret:           jwtSecret,
		ChainRPCURL:         rpcURL,
		ChainAPIKey:         os.Getenv("CHAIN_API_KEY"),
		NFTContract:         nftContract,
		RewardContract:      rewardContract,
		CustodianAddress:    custodian,
		CatalogToken:        catalogToken,
		TypesTableID:        os.Getenv("TYPES_TABLE_ID"),
		PediaTableID:        os.Getenv("PEDIA_TABLE_ID"),
		PassivesTableID:     os.Getenv("PASSIVES_TABLE_ID"),
		PlayerAPITitleID:    os.Getenv("PLAYER_API_TITLE_ID"),
		PlayerAPISecretKey:  os.Getenv("PLAYER_API_SECRET_KEY"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		UpstreamTimeout:     upstreamTimeout,
		TierRefreshInterval: tierRefresh,
		VolumeResetEnabled:  os.Getenv("VOLUME_RESET_ENABLED") != "false",
		SchedulerBatchSize:  batchSize,
		LogLevel:            strings.ToLower(os.Getenv("LOG_LEVEL")),
		LogJSON:             os.Getenv("LOG_JSON") == "true",
	}
}
