package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is a basket line. It refers to the show by id and keeps only what it
// prices and displays; seat counts are always read live from the catalog.
type Ticket struct {
	PerformanceID int64           `json:"performance_id"`
	Title         string          `json:"title"`
	StartDateTime time.Time       `json:"start_date_time"`
	TicketPrice   decimal.Decimal `json:"ticket_price"`
	FullPrice     int             `json:"full_price"`
	Concession    int             `json:"concession"`
}

func NewTicket(p Performance, fullPrice, concession int) (Ticket, error) {
	if fullPrice < 0 || concession < 0 || fullPrice+concession < 1 {
		return Ticket{}, fmt.Errorf("%w: %d full price and %d concession", ErrInvalidSelection, fullPrice, concession)
	}

	return Ticket{
		PerformanceID: p.ID,
		Title:         p.Title,
		StartDateTime: p.StartDateTime,
		TicketPrice:   p.TicketPrice,
		FullPrice:     fullPrice,
		Concession:    concession,
	}, nil
}

func (t Ticket) Count() int {
	return t.FullPrice + t.Concession
}

// Cost is unrounded: fullPrice*price + concession*price*concessionRate.
func (t Ticket) Cost(concessionRate decimal.Decimal) decimal.Decimal {
	price := t.TicketPrice
	full := price.Mul(decimal.NewFromInt(int64(t.FullPrice)))
	conc := price.Mul(concessionRate).Mul(decimal.NewFromInt(int64(t.Concession)))

	return full.Add(conc)
}

// RoundMoney truncates an amount down to whole pence.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundFloor(2)
}
