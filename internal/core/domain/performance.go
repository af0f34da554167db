package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxCircleSeats = 80
	MaxStallSeats  = 120
)

// ShowDateLayout is the dd-MM-yy form patrons type when searching by date.
const ShowDateLayout = "02-01-06"

type Performance struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Genre         string          `json:"genre,omitempty"`
	Language      string          `json:"language,omitempty"`
	StartDateTime time.Time       `json:"start_date_time"`
	TicketPrice   decimal.Decimal `json:"ticket_price"`
	CircleSeats   int             `json:"circle_seats_available"`
	StallSeats    int             `json:"stall_seats_available"`
}

// SeatsAvailable is the combined circle and stalls count of this snapshot.
func (p Performance) SeatsAvailable() int {
	return p.CircleSeats + p.StallSeats
}

func (p Performance) Validate() error {
	if p.CircleSeats < 0 || p.CircleSeats > MaxCircleSeats {
		return fmt.Errorf("%w: circle seats %d", ErrInvalidSeatCount, p.CircleSeats)
	}

	if p.StallSeats < 0 || p.StallSeats > MaxStallSeats {
		return fmt.Errorf("%w: stall seats %d", ErrInvalidSeatCount, p.StallSeats)
	}

	if p.TicketPrice.IsNegative() {
		return fmt.Errorf("negative ticket price %s", p.TicketPrice)
	}

	return nil
}

// SeatAllocation is how many circle and stall seats a ticket consumed at commit.
type SeatAllocation struct {
	Circle int `json:"circle"`
	Stall  int `json:"stall"`
}

func (a SeatAllocation) Total() int {
	return a.Circle + a.Stall
}

// AllocateSeats splits count over the live snapshot, filling the stalls before
// the circle.
func AllocateSeats(p Performance, count int) (SeatAllocation, error) {
	if count < 1 {
		return SeatAllocation{}, ErrInvalidSelection
	}

	if count > p.SeatsAvailable() {
		return SeatAllocation{}, fmt.Errorf("%w: performance %d has %d seats, %d requested",
			ErrInsufficientSeats, p.ID, p.SeatsAvailable(), count)
	}

	stall := min(count, p.StallSeats)

	return SeatAllocation{Circle: count - stall, Stall: stall}, nil
}

func ParseShowDate(s string) (time.Time, error) {
	t, err := time.Parse(ShowDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be dd-MM-yy", ErrMalformedInput, s)
	}

	return t, nil
}
