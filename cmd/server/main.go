package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/config"
	"github.com/iliyamo/travel-listing-booking/internal/database"
	"github.com/iliyamo/travel-listing-booking/internal/handler"
	"github.com/iliyamo/travel-listing-booking/internal/middleware"
	"github.com/iliyamo/travel-listing-booking/internal/queue"
	"github.com/iliyamo/travel-listing-booking/internal/repository"
	"github.com/iliyamo/travel-listing-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	// Handlers
	auth := handler.NewAuthHandler(cfg, users, tokens)
	listingH := handler.NewListingHandler(listings)
	bookingH := handler.NewBookingHandler(listings, bookings, users)
	reviewH := handler.NewReviewHandler(listings, reviews, users)
	public := &handler.PublicHandler{Listings: listings, Reviews: reviews}

	e := echo.New()
	e.Validator = handler.NewValidator()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, cacheMW)
	router.RegisterListings(e, listingH, cfg.JWTSecret)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)
	router.RegisterReviews(e, reviewH, cfg.JWTSecret)

	// Background consumer that appends booking.created events to
	// logs/booking.log.  Runs its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
