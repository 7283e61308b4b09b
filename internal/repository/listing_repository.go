// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for listings. A Listing represents a
// rentable property owned by a single user; deleting a listing removes all of
// its bookings and reviews.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/travel-listing-booking/internal/model"
)

// ErrListingNotFound is returned when a listing cannot be found in the DB.
var ErrListingNotFound = errors.New("listing not found")

// ListingRepo encapsulates all database queries related to listings.  It
// depends on a sql.DB connection which should be configured elsewhere.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo constructs a ListingRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

// DB exposes the underlying connection so handlers can open transactions
// that span multiple repositories.
func (r *ListingRepo) DB() *sql.DB { return r.db }

const listingColumns = `id, owner_id, title, description, address, city, state, country,
	price_per_night_cents, property_type, num_bedrooms, num_bathrooms, max_guests,
	amenities, is_available, created_at, updated_at`

func scanListing(row interface{ Scan(...any) error }, l *model.Listing) error {
	return row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Address, &l.City, &l.State,
		&l.Country, &l.PricePerNightCents, &l.PropertyType, &l.NumBedrooms,
		&l.NumBathrooms, &l.MaxGuests, &l.Amenities, &l.IsAvailable,
		&l.CreatedAt, &l.UpdatedAt,
	)
}

// Create inserts a new listing.  On success the listing's ID field is
// populated with the auto-generated value and a follow-up SELECT fills
// the default timestamp fields so callers receive a fully populated record.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	const qInsert = `INSERT INTO listings
		(owner_id, title, description, address, city, state, country,
		 price_per_night_cents, property_type, num_bedrooms, num_bathrooms,
		 max_guests, amenities, is_available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		l.OwnerID, l.Title, l.Description, l.Address, l.City, l.State, l.Country,
		l.PricePerNightCents, l.PropertyType, l.NumBedrooms, l.NumBathrooms,
		l.MaxGuests, l.Amenities, l.IsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM listings WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, l.ID).Scan(&l.CreatedAt, &l.UpdatedAt)
}

// GetByID fetches a listing by its ID regardless of owner.  It returns
// ErrListingNotFound if no row is found.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	q := "SELECT " + listingColumns + " FROM listings WHERE id = ?"
	var l model.Listing
	if err := scanListing(r.db.QueryRowContext(ctx, q, id), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// GetByIDTx is GetByID inside an existing transaction.  Booking creation
// reads the listing's capacity and rate in the same transaction that
// inserts the booking row.
func (r *ListingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Listing, error) {
	q := "SELECT " + listingColumns + " FROM listings WHERE id = ?"
	var l model.Listing
	if err := scanListing(tx.QueryRowContext(ctx, q, id), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListByOwner returns all listings for a specific owner ordered by id.
func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Listing, error) {
	q := "SELECT " + listingColumns + " FROM listings WHERE owner_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Listing
	for rows.Next() {
		l := new(model.Listing)
		if err := scanListing(rows, l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListingUpdate carries the client-writable listing fields for a partial
// update.  Nil pointers mean "leave unchanged".  Identity, owner and
// timestamp fields are deliberately absent so they can never be written
// from a request body.
type ListingUpdate struct {
	Title              *string
	Description        *string
	Address            *string
	City               *string
	State              *string
	Country            *string
	PricePerNightCents *uint32
	PropertyType       *string
	NumBedrooms        *uint32
	NumBathrooms       *uint32
	MaxGuests          *uint32
	Amenities          *string
	IsAvailable        *bool
}

// Update applies a partial update to a listing owned by ownerID.  It
// returns sql.ErrNoRows when the listing does not exist and ErrForbidden
// when it belongs to a different user.  When no field is set the method
// is a no-op beyond the ownership check.
func (r *ListingRepo) Update(ctx context.Context, id, ownerID uint64, u ListingUpdate) error {
	var dbOwnerID uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM listings WHERE id = ?", id).Scan(&dbOwnerID)
	if err != nil {
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}

	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Address != nil {
		add("address", *u.Address)
	}
	if u.City != nil {
		add("city", *u.City)
	}
	if u.State != nil {
		add("state", *u.State)
	}
	if u.Country != nil {
		add("country", *u.Country)
	}
	if u.PricePerNightCents != nil {
		add("price_per_night_cents", *u.PricePerNightCents)
	}
	if u.PropertyType != nil {
		add("property_type", *u.PropertyType)
	}
	if u.NumBedrooms != nil {
		add("num_bedrooms", *u.NumBedrooms)
	}
	if u.NumBathrooms != nil {
		add("num_bathrooms", *u.NumBathrooms)
	}
	if u.MaxGuests != nil {
		add("max_guests", *u.MaxGuests)
	}
	if u.Amenities != nil {
		add("amenities", *u.Amenities)
	}
	if u.IsAvailable != nil {
		add("is_available", *u.IsAvailable)
	}
	if len(set) == 0 {
		return nil
	}

	q := "UPDATE listings SET "
	for i, s := range set {
		if i > 0 {
			q += ", "
		}
		q += s
	}
	q += ", updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?"
	args = append(args, id, ownerID)
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

// DeleteByIDAndOwner removes a listing and all dependent records (bookings
// and reviews) provided it belongs to the specified owner. If the listing
// does not exist, sql.ErrNoRows is returned. If the listing exists but is
// owned by a different user, ErrForbidden is returned. The deletion occurs
// within a transaction to maintain integrity.
func (r *ListingRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify the listing exists and check ownership
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, "SELECT owner_id FROM listings WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	// Cascade delete: bookings and reviews reference the listing
	if _, err = tx.ExecContext(ctx, "DELETE FROM bookings WHERE listing_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM reviews WHERE listing_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id)
	return err
}
