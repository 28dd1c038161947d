package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/team33/casino-gateway/internal/config"
	"github.com/team33/casino-gateway/internal/migrations"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set to run migrations")
	}

	if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("✓ Migrations applied")
}
