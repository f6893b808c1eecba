package domain

import (
	"context"
	"time"
)

type Listing struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	PricePerNight float64   `json:"pricePerNight"`
	MaxGuests     int       `json:"maxGuests"`
	Media         RawJSON   `json:"media"`
	Images        []string  `json:"images"` // Mapped from Media
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Experience struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	PricePerPerson float64   `json:"pricePerPerson"`
	MaxGuests      int       `json:"maxGuests"`
	Media          RawJSON   `json:"media"`
	Images         []string  `json:"images"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CatalogRepository interface {
	// ExistsActive reports whether an active entity of type t with the
	// given id exists. Unknown types report false without touching
	// storage.
	ExistsActive(ctx context.Context, id string, t ItemType) (bool, error)

	GetListingByID(ctx context.Context, id string) (*Listing, error)
	ListListings(ctx context.Context, limit, offset int) ([]Listing, int64, error)
	CreateListing(ctx context.Context, l *Listing) error

	GetExperienceByID(ctx context.Context, id string) (*Experience, error)
	CreateExperience(ctx context.Context, e *Experience) error
}
