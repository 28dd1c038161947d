package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/api"
	"github.com/team33/casino-gateway/internal/auth"
	"github.com/team33/casino-gateway/internal/config"
	"github.com/team33/casino-gateway/internal/database"
	"github.com/team33/casino-gateway/internal/games"
	"github.com/team33/casino-gateway/internal/migrations"
	"github.com/team33/casino-gateway/internal/promo"
	"github.com/team33/casino-gateway/internal/redis"
	"github.com/team33/casino-gateway/internal/store"
	"github.com/team33/casino-gateway/internal/wallet"
	"github.com/team33/casino-gateway/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Pick the session store backend
	var st store.Store
	var events wallet.Publisher = wallet.NopPublisher{}
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if os.Getenv("MIGRATE_ON_START") == "true" {
			log.Println("↗ Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
		st = store.NewPostgresStore(db)
		events = wallet.NewRedisPublisher(rdb)
	case "memory":
		st = store.NewMemoryStore()
		log.Println("[STORE] Using in-memory store, state is lost on restart")
	default:
		st = store.NewRedisStore(rdb)
		events = wallet.NewRedisPublisher(rdb)
	}

	// Admin API client reuses the persisted session token on every call
	client := adminapi.NewClient(cfg, &auth.StoreTokenSource{Store: st})

	svcs := api.Services{
		Auth:   auth.NewService(st, client, cfg),
		Games:  games.NewService(client, st, cfg),
		Promo:  promo.NewService(client),
		Wallet: wallet.NewService(st, client, cfg, events),
		Hub:    ws.NewHub(),
	}

	// Forward wallet events from Redis to connected sockets
	svcs.Hub.StartWalletEventSubscriber(context.Background(), rdb)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, svcs, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting casino gateway on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
