package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/travel-listing-booking/internal/model"
)

// ErrBookingNotFound is returned when a booking cannot be found for the
// requesting user.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides CRUD operations for bookings.  A booking ties a
// user to a listing for a date range; check-in and check-out are stored
// as DATE columns and all timestamps are assumed to be UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const dateLayout = "2006-01-02"

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID and timestamp fields on the
// provided record.  The caller must commit or rollback the transaction.
// Status should be a valid enumeration value (model.BookingStatuses).
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(listing_id, user_id, check_in, check_out, number_of_guests, total_price_cents, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		b.ListingID, b.UserID,
		b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout),
		b.NumberOfGuests, b.TotalPriceCents, b.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to populate timestamps and defaults
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a booking outside of an explicit transaction.  The
// sample-data generator uses this; the request path goes through CreateTx.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := r.CreateTx(ctx, tx, b); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// BookingDetail encapsulates a booking along with display information
// about the listing.  It is what customers see when listing their own
// bookings: listing and user references are shown in display form
// rather than as bare foreign keys.
type BookingDetail struct {
	ID              uint64    `json:"id"`
	Listing         string    `json:"listing"`
	ListingID       uint64    `json:"listing_id"`
	City            string    `json:"city"`
	CheckIn         string    `json:"check_in"`
	CheckOut        string    `json:"check_out"`
	NumberOfGuests  uint32    `json:"number_of_guests"`
	TotalPriceCents uint32    `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListByUser returns every booking made by the given user, newest first,
// joined with the listing title and city for display.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT
			b.id,
			l.title,
			b.listing_id,
			l.city,
			DATE_FORMAT(b.check_in,  '%Y-%m-%d'),
			DATE_FORMAT(b.check_out, '%Y-%m-%d'),
			b.number_of_guests,
			b.total_price_cents,
			b.status,
			b.created_at
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.user_id = ?
		ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BookingDetail{}
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID, &d.Listing, &d.ListingID, &d.City, &d.CheckIn, &d.CheckOut,
			&d.NumberOfGuests, &d.TotalPriceCents, &d.Status, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDForUser returns a single booking for the given user.  Bookings
// belonging to other users are reported as ErrBookingNotFound rather
// than forbidden so the endpoint does not leak which IDs exist.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*BookingDetail, error) {
	const q = `SELECT
			b.id,
			l.title,
			b.listing_id,
			l.city,
			DATE_FORMAT(b.check_in,  '%Y-%m-%d'),
			DATE_FORMAT(b.check_out, '%Y-%m-%d'),
			b.number_of_guests,
			b.total_price_cents,
			b.status,
			b.created_at
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.id = ? AND b.user_id = ?`
	var d BookingDetail
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&d.ID, &d.Listing, &d.ListingID, &d.City, &d.CheckIn, &d.CheckOut,
		&d.NumberOfGuests, &d.TotalPriceCents, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}
