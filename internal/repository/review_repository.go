package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/travel-listing-booking/internal/model"
)

// ReviewRepo provides persistence for listing reviews.  Reviews are
// append-only in the current API surface: they are created through the
// validated path and removed only when their listing or author is
// deleted.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and populates the generated ID and timestamp
// fields on the provided record.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	const q = "INSERT INTO reviews (listing_id, user_id, rating, comment) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, rev.ListingID, rev.UserID, rev.Rating, rev.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)

	const sel = "SELECT created_at, updated_at FROM reviews WHERE id = ?"
	return r.db.QueryRowContext(ctx, sel, rev.ID).Scan(&rev.CreatedAt, &rev.UpdatedAt)
}

// ReviewDetail is the display form of a review: the author appears as an
// email address and the listing as its title, not as bare foreign keys.
type ReviewDetail struct {
	ID        uint64    `json:"id"`
	User      string    `json:"user"`
	Listing   string    `json:"listing"`
	Rating    uint8     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ListByListing returns all reviews for a listing, newest first.
func (r *ReviewRepo) ListByListing(ctx context.Context, listingID uint64) ([]ReviewDetail, error) {
	const q = `SELECT
			rv.id,
			u.email,
			l.title,
			rv.rating,
			rv.comment,
			rv.created_at
		FROM reviews rv
		JOIN users u    ON u.id = rv.user_id
		JOIN listings l ON l.id = rv.listing_id
		WHERE rv.listing_id = ?
		ORDER BY rv.id DESC`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ReviewDetail{}
	for rows.Next() {
		var d ReviewDetail
		if err := rows.Scan(&d.ID, &d.User, &d.Listing, &d.Rating, &d.Comment, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
