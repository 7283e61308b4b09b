// Package seed populates the database with randomized demo data: one
// admin, a handful of regular users, listings, bookings and reviews.
// It is a setup utility and never runs on the request-serving path.
// Users are created with get-or-create semantics so repeated runs do
// not duplicate accounts; listings, bookings and reviews are appended
// on every run.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/iliyamo/travel-listing-booking/internal/model"
	"github.com/iliyamo/travel-listing-booking/internal/pricing"
	"github.com/iliyamo/travel-listing-booking/internal/repository"
)

const (
	numUsers    = 5
	numListings = 10
	numBookings = 20
	numReviews  = 15
)

var propertyTypes = []string{
	model.PropertyApartment, model.PropertyHouse, model.PropertyVilla,
	model.PropertyCottage, model.PropertyCabin, model.PropertyBeachHouse,
}

// Run seeds the database.  bcryptCost is forwarded to user creation so
// the generated accounts can actually log in.
func Run(ctx context.Context, db *sql.DB, bcryptCost int) error {
	users := repository.NewUserRepo(db)
	listings := repository.NewListingRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	log.Printf("starting database seeding")

	adminID, created, err := users.GetOrCreate(ctx, "admin@travelapp.local", "admin123", "ADMIN", bcryptCost)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	if created {
		log.Printf("created admin user (id=%d)", adminID)
	}

	regularIDs := make([]uint64, 0, numUsers)
	for i := 1; i <= numUsers; i++ {
		email := fmt.Sprintf("user%d@example.com", i)
		id, created, err := users.GetOrCreate(ctx, email, fmt.Sprintf("user%d123", i), "USER", bcryptCost)
		if err != nil {
			return fmt.Errorf("create %s: %w", email, err)
		}
		regularIDs = append(regularIDs, id)
		if created {
			log.Printf("created user %s (id=%d)", email, id)
		}
	}

	listingIDs := make([]*model.Listing, 0, numListings)
	for i := 0; i < numListings; i++ {
		// first half owned by the admin, the rest by random users
		ownerID := adminID
		if i >= numListings/2 {
			ownerID = regularIDs[rand.Intn(len(regularIDs))]
		}
		l := &model.Listing{
			OwnerID:            ownerID,
			Title:              gofakeit.Sentence(4),
			Description:        gofakeit.Paragraph(1, 5, 12, " "),
			Address:            gofakeit.Street(),
			City:               gofakeit.City(),
			State:              gofakeit.State(),
			Country:            gofakeit.Country(),
			PricePerNightCents: uint32(gofakeit.Number(50, 500)) * 100,
			PropertyType:       propertyTypes[rand.Intn(len(propertyTypes))],
			NumBedrooms:        uint32(gofakeit.Number(1, 5)),
			NumBathrooms:       uint32(gofakeit.Number(1, 3)),
			MaxGuests:          uint32(gofakeit.Number(2, 10)),
			Amenities:          randomAmenities(),
			IsAvailable:        rand.Intn(2) == 0,
		}
		if err := listings.Create(ctx, l); err != nil {
			return fmt.Errorf("create listing: %w", err)
		}
		listingIDs = append(listingIDs, l)
		log.Printf("created listing %q (id=%d)", l.Title, l.ID)
	}

	for i := 0; i < numBookings; i++ {
		l := listingIDs[rand.Intn(len(listingIDs))]
		start := time.Now().UTC().AddDate(0, 0, rand.Intn(61)-30)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1+rand.Intn(14))
		// seeded bookings price by duration only, without the guest
		// multiplier used on the validated creation path
		total, err := pricing.SeedTotalCents(start, end, l.PricePerNightCents)
		if err != nil {
			return fmt.Errorf("price booking: %w", err)
		}
		b := &model.Booking{
			ListingID:       l.ID,
			UserID:          regularIDs[rand.Intn(len(regularIDs))],
			CheckIn:         start,
			CheckOut:        end,
			NumberOfGuests:  1 + uint32(rand.Intn(int(l.MaxGuests))),
			TotalPriceCents: total,
			Status:          model.BookingStatuses[rand.Intn(len(model.BookingStatuses))],
		}
		if err := bookings.Create(ctx, b); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		log.Printf("created booking for %q (id=%d)", l.Title, b.ID)
	}

	for i := 0; i < numReviews; i++ {
		l := listingIDs[rand.Intn(len(listingIDs))]
		r := &model.Review{
			ListingID: l.ID,
			UserID:    regularIDs[rand.Intn(len(regularIDs))],
			Rating:    uint8(1 + rand.Intn(5)),
			Comment:   gofakeit.Paragraph(1, 2, 12, " "),
		}
		if err := reviews.Create(ctx, r); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		log.Printf("created review for %q (id=%d)", l.Title, r.ID)
	}

	log.Printf("database seeding completed")
	return nil
}

func randomAmenities() string {
	n := 3 + rand.Intn(8)
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, gofakeit.Word())
	}
	return strings.Join(words, ", ")
}
