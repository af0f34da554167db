package domain

import "errors"

var (
	ErrInvalidSelection   = errors.New("invalid ticket selection")
	ErrCapacityExceeded   = errors.New("not enough seats available")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrPaymentDenied      = errors.New("payment denied")
	ErrMalformedInput     = errors.New("malformed input")

	// ErrInsufficientSeats is returned by catalogs when a conditional decrement
	// finds fewer live seats than requested.
	ErrInsufficientSeats   = errors.New("insufficient seats")
	ErrInvalidSeatCount    = errors.New("seat count out of range")
	ErrPerformanceNotFound = errors.New("performance not found")
	ErrNotInSearchResults  = errors.New("performance is not in the current search results")
	ErrEmptyBasket         = errors.New("basket is empty")
	ErrCheckoutInProgress  = errors.New("checkout already in progress")
	ErrSessionNotFound     = errors.New("session not found")
)
