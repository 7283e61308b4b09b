package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/travel-listing-booking/internal/config"
	"github.com/iliyamo/travel-listing-booking/internal/database"
	"github.com/iliyamo/travel-listing-booking/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed.Run(ctx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}
