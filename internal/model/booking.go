package model

import "time"

// Booking status values stored in bookings.status.  The source data model
// for this schema reused a single two-letter code for both Confirmed and
// Completed; distinct full-word codes are used here so the states stay
// representable.  No transition logic exists, statuses are plain data.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// BookingStatuses lists every valid booking status, in declaration order.
var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

// Booking records a user's reservation of a listing for a date range.
// CheckIn and CheckOut are calendar dates (DATE columns); the total
// price is derived at creation time and never supplied by clients.
//
// Fields:
//
//	ID              – primary key identifier.
//	ListingID       – listing being booked.
//	UserID          – user who made the booking.
//	CheckIn         – first night of the stay.
//	CheckOut        – check-out date (strictly after CheckIn).
//	NumberOfGuests  – guests in the party (1..listing.max_guests).
//	TotalPriceCents – nights × nightly rate × guests, in cents.
//	Status          – one of the status constants above (default PENDING).
//	CreatedAt       – creation timestamp.
//	UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	ListingID       uint64    // bookings.listing_id
	UserID          uint64    // bookings.user_id
	CheckIn         time.Time // bookings.check_in
	CheckOut        time.Time // bookings.check_out
	NumberOfGuests  uint32    // bookings.number_of_guests
	TotalPriceCents uint32    // bookings.total_price_cents
	Status          string    // bookings.status
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}
