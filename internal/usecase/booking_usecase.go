package usecase

import (
	"context"
	"fmt"

	"staynest-backend/internal/domain"
)

// BookingUsecase prices a stay and starts a hosted checkout session.
// The payment flow behind the returned URL is the collaborator's
// concern entirely.
type BookingUsecase struct {
	catalog  domain.CatalogRepository
	sessions domain.CheckoutSessionCreator
}

func NewBookingUsecase(catalog domain.CatalogRepository, sessions domain.CheckoutSessionCreator) *BookingUsecase {
	return &BookingUsecase{
		catalog:  catalog,
		sessions: sessions,
	}
}

// StartCheckout validates the quote, computes nights x pricePerNight,
// and asks the collaborator for a redirect URL.
func (u *BookingUsecase) StartCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	if req.ListingID == "" {
		return nil, fmt.Errorf("%w: listing is required", domain.ErrValidation)
	}
	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		return nil, fmt.Errorf("%w: check-in and check-out dates are required", domain.ErrValidation)
	}
	if !req.CheckOutDate.After(req.CheckInDate) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}
	if req.GuestsCount < 1 {
		return nil, fmt.Errorf("%w: at least one guest is required", domain.ErrValidation)
	}

	listing, err := u.catalog.GetListingByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil || !listing.IsActive {
		return nil, domain.ErrListingNotFound
	}
	if listing.MaxGuests > 0 && req.GuestsCount > listing.MaxGuests {
		return nil, fmt.Errorf("%w: listing sleeps at most %d guests", domain.ErrValidation, listing.MaxGuests)
	}

	nights := int(req.CheckOutDate.Sub(req.CheckInDate).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	totalPrice := float64(nights) * listing.PricePerNight

	return u.sessions.CreateSession(ctx, req, totalPrice)
}
