package model

import "time"

// Property type codes stored in listings.property_type.  Two-letter codes
// are kept in the database while the full labels are used for display.
const (
	PropertyApartment  = "AP"
	PropertyHouse      = "HO"
	PropertyVilla      = "VI"
	PropertyCottage    = "CO"
	PropertyCabin      = "CA"
	PropertyBeachHouse = "BE"
)

// PropertyTypeLabels maps each property type code to its human readable
// label.  Unknown codes are not present in the map.
var PropertyTypeLabels = map[string]string{
	PropertyApartment:  "Apartment",
	PropertyHouse:      "House",
	PropertyVilla:      "Villa",
	PropertyCottage:    "Cottage",
	PropertyCabin:      "Cabin",
	PropertyBeachHouse: "Beach House",
}

// ValidPropertyType reports whether the given code is one of the known
// property type codes.
func ValidPropertyType(code string) bool {
	_, ok := PropertyTypeLabels[code]
	return ok
}

// Listing represents a rentable property as stored in the `listings`
// table.  Each listing belongs to a single owner (a user) and may have
// many bookings and reviews.  Prices are stored as integer cents to
// avoid floating point money.
//
// Fields:
//
//	ID                 – primary key identifier.
//	OwnerID            – user who owns the listing (listings.owner_id).
//	Title              – short human readable title.
//	Description        – free text description.
//	Address            – street address.
//	City/State/Country – location fields.
//	PricePerNightCents – nightly rate in cents.
//	PropertyType       – two-letter type code (see constants above).
//	NumBedrooms        – number of bedrooms.
//	NumBathrooms       – number of bathrooms.
//	MaxGuests          – maximum guests a booking may bring.
//	Amenities          – comma-joined free text tags.
//	IsAvailable        – whether the listing accepts bookings.
//	CreatedAt          – creation timestamp.
//	UpdatedAt          – last update timestamp.
type Listing struct {
	ID                 uint64    // listings.id
	OwnerID            uint64    // listings.owner_id
	Title              string    // listings.title
	Description        string    // listings.description
	Address            string    // listings.address
	City               string    // listings.city
	State              string    // listings.state
	Country            string    // listings.country
	PricePerNightCents uint32    // listings.price_per_night_cents
	PropertyType       string    // listings.property_type
	NumBedrooms        uint32    // listings.num_bedrooms
	NumBathrooms       uint32    // listings.num_bathrooms
	MaxGuests          uint32    // listings.max_guests
	Amenities          string    // listings.amenities
	IsAvailable        bool      // listings.is_available
	CreatedAt          time.Time // listings.created_at
	UpdatedAt          time.Time // listings.updated_at
}
