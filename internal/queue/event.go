// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is created through the
// validated path.  It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database.
type BookingCreatedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	ListingID       uint64 `json:"listing_id"`
	ListingTitle    string `json:"listing_title"`
	City            string `json:"city"`
	UserID          uint64 `json:"user_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	NumberOfGuests  uint32 `json:"number_of_guests"`
	TotalPriceCents uint32 `json:"total_price_cents"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}
