package model

import "time"

// Review is a rating and optional comment left by a user for a listing.
// Ratings are integers between 1 and 5 inclusive; a blank comment is
// allowed.  Nothing prevents a user from reviewing the same listing more
// than once.
//
// Fields:
//
//	ID        – primary key identifier.
//	ListingID – listing being reviewed.
//	UserID    – author of the review.
//	Rating    – integer rating in [1,5].
//	Comment   – free text, may be empty.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Review struct {
	ID        uint64    // reviews.id
	ListingID uint64    // reviews.listing_id
	UserID    uint64    // reviews.user_id
	Rating    uint8     // reviews.rating
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
	UpdatedAt time.Time // reviews.updated_at
}
