package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/model"
	"github.com/iliyamo/travel-listing-booking/internal/repository"
)

// ListingHandler groups repositories for authenticated listing
// management.  Create, update and delete all force the owner to the
// authenticated requester; read-only fields (id, owner, timestamps) are
// not present on the input structs at all, so clients cannot supply them.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

// NewListingHandler constructs a ListingHandler and panics if the
// repository is nil.
func NewListingHandler(listings *repository.ListingRepo) *ListingHandler {
	if listings == nil {
		panic("nil repository passed to NewListingHandler")
	}
	return &ListingHandler{Listings: listings}
}

// createListingReq is the client-writable field set for a new listing.
type createListingReq struct {
	Title              string `json:"title" validate:"required"`
	Description        string `json:"description"`
	Address            string `json:"address" validate:"required"`
	City               string `json:"city" validate:"required"`
	State              string `json:"state"`
	Country            string `json:"country" validate:"required"`
	PricePerNightCents uint32 `json:"price_per_night_cents" validate:"required,min=1"`
	PropertyType       string `json:"property_type" validate:"required"`
	NumBedrooms        uint32 `json:"num_bedrooms"`
	NumBathrooms       uint32 `json:"num_bathrooms"`
	MaxGuests          uint32 `json:"max_guests" validate:"required,min=1"`
	Amenities          string `json:"amenities"`
	IsAvailable        *bool  `json:"is_available"`
}

// listingResp is the full attribute set exposed on reads.
type listingResp struct {
	ID                 uint64 `json:"id"`
	OwnerID            uint64 `json:"owner_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	Country            string `json:"country"`
	PricePerNightCents uint32 `json:"price_per_night_cents"`
	PropertyType       string `json:"property_type"`
	PropertyTypeLabel  string `json:"property_type_label"`
	NumBedrooms        uint32 `json:"num_bedrooms"`
	NumBathrooms       uint32 `json:"num_bathrooms"`
	MaxGuests          uint32 `json:"max_guests"`
	Amenities          string `json:"amenities"`
	IsAvailable        bool   `json:"is_available"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func toListingResp(l *model.Listing) listingResp {
	return listingResp{
		ID:                 l.ID,
		OwnerID:            l.OwnerID,
		Title:              l.Title,
		Description:        l.Description,
		Address:            l.Address,
		City:               l.City,
		State:              l.State,
		Country:            l.Country,
		PricePerNightCents: l.PricePerNightCents,
		PropertyType:       l.PropertyType,
		PropertyTypeLabel:  model.PropertyTypeLabels[l.PropertyType],
		NumBedrooms:        l.NumBedrooms,
		NumBathrooms:       l.NumBathrooms,
		MaxGuests:          l.MaxGuests,
		Amenities:          l.Amenities,
		IsAvailable:        l.IsAvailable,
		CreatedAt:          l.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:          l.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// CreateListing handles POST /v1/listings.  The owner is always the
// authenticated requester.
func (h *ListingHandler) CreateListing(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !model.ValidPropertyType(req.PropertyType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property_type"})
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	l := &model.Listing{
		OwnerID:            userID,
		Title:              req.Title,
		Description:        req.Description,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Country:            req.Country,
		PricePerNightCents: req.PricePerNightCents,
		PropertyType:       req.PropertyType,
		NumBedrooms:        req.NumBedrooms,
		NumBathrooms:       req.NumBathrooms,
		MaxGuests:          req.MaxGuests,
		Amenities:          req.Amenities,
		IsAvailable:        available,
	}
	if err := h.Listings.Create(c.Request().Context(), l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	return c.JSON(http.StatusCreated, toListingResp(l))
}

// updateListingReq mirrors createListingReq but with every field
// optional; absent fields are left unchanged.
type updateListingReq struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	State              *string `json:"state"`
	Country            *string `json:"country"`
	PricePerNightCents *uint32 `json:"price_per_night_cents"`
	PropertyType       *string `json:"property_type"`
	NumBedrooms        *uint32 `json:"num_bedrooms"`
	NumBathrooms       *uint32 `json:"num_bathrooms"`
	MaxGuests          *uint32 `json:"max_guests"`
	Amenities          *string `json:"amenities"`
	IsAvailable        *bool   `json:"is_available"`
}

// UpdateListing handles PATCH /v1/listings/:id as a partial edit.  Only
// the owner may update a listing; anyone else gets 403.
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	var req updateListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PropertyType != nil && !model.ValidPropertyType(*req.PropertyType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property_type"})
	}
	if req.MaxGuests != nil && *req.MaxGuests == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_guests must be at least 1"})
	}

	upd := repository.ListingUpdate{
		Title:              req.Title,
		Description:        req.Description,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Country:            req.Country,
		PricePerNightCents: req.PricePerNightCents,
		PropertyType:       req.PropertyType,
		NumBedrooms:        req.NumBedrooms,
		NumBathrooms:       req.NumBathrooms,
		MaxGuests:          req.MaxGuests,
		Amenities:          req.Amenities,
		IsAvailable:        req.IsAvailable,
	}
	ctx := c.Request().Context()
	if err := h.Listings.Update(ctx, id, userID, upd); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update listing failed"})
		}
	}
	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load listing failed"})
	}
	return c.JSON(http.StatusOK, toListingResp(l))
}

// DeleteListing handles DELETE /v1/listings/:id.  Deletion cascades to
// the listing's bookings and reviews inside one transaction.
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	if err := h.Listings.DeleteByIDAndOwner(c.Request().Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete listing failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMyListings handles GET /v1/my/listings and returns every listing
// owned by the requester.
func (h *ListingHandler) ListMyListings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ls, err := h.Listings.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]listingResp, 0, len(ls))
	for _, l := range ls {
		out = append(out, toListingResp(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
