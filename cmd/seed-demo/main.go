package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/auth"
	"github.com/team33/casino-gateway/internal/config"
	"github.com/team33/casino-gateway/internal/database"
	"github.com/team33/casino-gateway/internal/redis"
	"github.com/team33/casino-gateway/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	var st store.Store
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		st = store.NewPostgresStore(db)
	case "memory":
		log.Fatal("memory store cannot be seeded from a separate process")
	default:
		rdb, err := redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		st = store.NewRedisStore(rdb)
	}

	client := adminapi.NewClient(cfg, &auth.StoreTokenSource{Store: st})
	svc := auth.NewService(st, client, cfg)

	username := os.Getenv("DEMO_USERNAME")
	if username == "" {
		username = "demo"
		log.Printf("Using default demo username: %s", username)
	}

	password := os.Getenv("DEMO_PASSWORD")
	if password == "" {
		password = "demo-change-me"
		log.Printf("WARNING: Using default demo password. Set DEMO_PASSWORD env var in production!")
	}

	account, err := svc.RegisterDemoAccount(context.Background(), username, password)
	if err != nil {
		log.Fatalf("Failed to seed demo account: %v", err)
	}

	log.Printf("✓ Demo account created/updated successfully")
	log.Printf("  Account ID: %s", account.AccountID)
	log.Printf("  Username: %s", account.Username)
}
