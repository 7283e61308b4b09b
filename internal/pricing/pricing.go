// Package pricing holds the price arithmetic for bookings.  The functions
// are pure so they can be exercised without a database; all money values
// are integer cents.
package pricing

import (
	"errors"
	"math"
	"time"
)

// ErrPriceOverflow is returned when a computed total does not fit in the
// 32-bit cents column, so a wrong (wrapped) price is never stored.
var ErrPriceOverflow = errors.New("total price exceeds supported range")

// Nights returns the number of whole days between check-in and check-out.
// Both arguments are calendar dates (time components are ignored by
// truncating to UTC midnight before subtracting).  A non-positive result
// means the range is invalid.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// TotalCents computes the total booking price in cents:
// nights × nightly rate × number of guests.  Callers must validate the
// date range first; a zero or negative night count yields zero.  The
// product is computed in 64 bits and ErrPriceOverflow is returned when
// it exceeds the column range.
func TotalCents(checkIn, checkOut time.Time, nightlyCents uint32, guests uint32) (uint32, error) {
	n := Nights(checkIn, checkOut)
	if n <= 0 {
		return 0, nil
	}
	total := uint64(n) * uint64(nightlyCents) * uint64(guests)
	if total > math.MaxUint32 {
		return 0, ErrPriceOverflow
	}
	return uint32(total), nil
}

// SeedTotalCents computes the price the sample-data generator assigns to
// its randomized bookings: nights × nightly rate, without the guest
// multiplier.  The seeded path and the validated creation path use
// different formulas upstream and are intentionally kept independent.
func SeedTotalCents(checkIn, checkOut time.Time, nightlyCents uint32) (uint32, error) {
	n := Nights(checkIn, checkOut)
	if n <= 0 {
		return 0, nil
	}
	total := uint64(n) * uint64(nightlyCents)
	if total > math.MaxUint32 {
		return 0, ErrPriceOverflow
	}
	return uint32(total), nil
}
