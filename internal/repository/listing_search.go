package repository

import (
	"context"
	"strings"
)

// ListingSearchQuery defines filters & pagination for browsing listings.
// Zero values mean the filter is not applied.
type ListingSearchQuery struct {
	City          string
	Country       string
	PropertyType  string
	MaxPriceCents uint32
	Guests        uint32
	OnlyAvailable bool
	Page          int
	PageSize      int
}

// PublicListingRow is the sanitized listing shape returned by Search.
// Owner IDs and timestamps are not exposed to unauthenticated browsers.
type PublicListingRow struct {
	ID                 uint64  `json:"id"`
	Title              string  `json:"title"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	Country            string  `json:"country"`
	PropertyType       string  `json:"property_type"`
	PricePerNightCents uint32  `json:"price_per_night_cents"`
	PricePerNight      float64 `json:"price_per_night"`
	NumBedrooms        uint32  `json:"num_bedrooms"`
	NumBathrooms       uint32  `json:"num_bathrooms"`
	MaxGuests          uint32  `json:"max_guests"`
	IsAvailable        bool    `json:"is_available"`
}

// Search returns a page of listings matching the query plus the total
// match count.  Filters are combined with AND; text filters use
// case-insensitive substring matching.
func (r *ListingRepo) Search(ctx context.Context, q ListingSearchQuery) ([]PublicListingRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.City != "" {
		where = append(where, "LOWER(l.city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if q.Country != "" {
		where = append(where, "LOWER(l.country) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Country)+"%")
	}
	if q.PropertyType != "" {
		where = append(where, "l.property_type = ?")
		args = append(args, strings.ToUpper(q.PropertyType))
	}
	if q.MaxPriceCents > 0 {
		where = append(where, "l.price_per_night_cents <= ?")
		args = append(args, q.MaxPriceCents)
	}
	if q.Guests > 0 {
		where = append(where, "l.max_guests >= ?")
		args = append(args, q.Guests)
	}
	if q.OnlyAvailable {
		where = append(where, "l.is_available = 1")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM listings l WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			l.id,
			l.title,
			l.city,
			l.state,
			l.country,
			l.property_type,
			l.price_per_night_cents,
			l.num_bedrooms,
			l.num_bathrooms,
			l.max_guests,
			l.is_available
		FROM listings l
		WHERE ` + cond + `
		ORDER BY l.id ASC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, dataSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []PublicListingRow{}
	for rows.Next() {
		var row PublicListingRow
		if err := rows.Scan(
			&row.ID, &row.Title, &row.City, &row.State, &row.Country,
			&row.PropertyType, &row.PricePerNightCents, &row.NumBedrooms,
			&row.NumBathrooms, &row.MaxGuests, &row.IsAvailable,
		); err != nil {
			return nil, 0, err
		}
		row.PricePerNight = float64(row.PricePerNightCents) / 100.0
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
