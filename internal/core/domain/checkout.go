package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutState string

const (
	CheckoutIdle     CheckoutState = "IDLE"
	AwaitingIdentity CheckoutState = "AWAITING_IDENTITY"
	AwaitingPayment  CheckoutState = "AWAITING_PAYMENT"
	ReservingSeats   CheckoutState = "RESERVING_SEATS"
	RecordingBooking CheckoutState = "RECORDING_BOOKING"
	Committed        CheckoutState = "COMMITTED"
	AbortedIdentity  CheckoutState = "ABORTED_IDENTITY"
	AbortedPayment   CheckoutState = "ABORTED_PAYMENT"
	AbortedCapacity  CheckoutState = "ABORTED_CAPACITY"
	AbortedRecording CheckoutState = "ABORTED_RECORDING"
)

func (s CheckoutState) Aborted() bool {
	switch s {
	case AbortedIdentity, AbortedPayment, AbortedCapacity, AbortedRecording:
		return true
	}

	return false
}

// CheckoutError reports the state a checkout attempt aborted in. The basket
// and seat counts are as they were before the attempt.
type CheckoutError struct {
	State CheckoutState
	Err   error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout %s: %v", e.State, e.Err)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

type IssuedTicket struct {
	Ticket
	Seats SeatAllocation  `json:"seats"`
	Cost  decimal.Decimal `json:"cost"`
}

type Confirmation struct {
	ID          uuid.UUID       `json:"id"`
	PatronID    int64           `json:"patron_id"`
	Tickets     []IssuedTicket  `json:"tickets"`
	Total       decimal.Decimal `json:"total"`
	CommittedAt time.Time       `json:"committed_at"`
}

// SeatsCommitted is the number of seats taken from inventory by this confirmation.
func (c Confirmation) SeatsCommitted() int {
	n := 0
	for _, t := range c.Tickets {
		n += t.Seats.Total()
	}

	return n
}
