package domain

import (
	"context"
	"time"
)

// CheckoutRequest is what the booking widget submits to start a hosted
// payment flow for a stay.
type CheckoutRequest struct {
	ListingID    string    `json:"listing"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	GuestsCount  int       `json:"guestsCount"`
}

// CheckoutSession is the collaborator's answer: a URL the browser is
// redirected to. The payment flow behind it is a black box here.
type CheckoutSession struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// CheckoutSessionCreator starts a hosted checkout session with the
// payment collaborator. totalPrice is pre-computed by the caller.
type CheckoutSessionCreator interface {
	CreateSession(ctx context.Context, req CheckoutRequest, totalPrice float64) (*CheckoutSession, error)
}
