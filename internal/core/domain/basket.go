package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Basket holds at most one Ticket per performance, in insertion order.
type Basket struct {
	concessionRate decimal.Decimal
	tickets        []Ticket
}

func NewBasket(concessionRate decimal.Decimal) *Basket {
	return &Basket{concessionRate: concessionRate}
}

func (b *Basket) ConcessionRate() decimal.Decimal {
	return b.concessionRate
}

// AddOrUpdate replaces any existing ticket for the performance, keeping its
// position. Counts are checked against the seats known on the snapshot only;
// the authoritative check happens at checkout.
func (b *Basket) AddOrUpdate(p Performance, fullPrice, concession int) error {
	ticket, err := NewTicket(p, fullPrice, concession)
	if err != nil {
		return err
	}

	if ticket.Count() > p.SeatsAvailable() {
		return fmt.Errorf("%w: %d requested, %d available for performance %d",
			ErrCapacityExceeded, ticket.Count(), p.SeatsAvailable(), p.ID)
	}

	if i := b.indexOf(p.ID); i >= 0 {
		b.tickets[i] = ticket
		return nil
	}

	b.tickets = append(b.tickets, ticket)

	return nil
}

// RemoveByID is a no-op when the performance is not in the basket.
func (b *Basket) RemoveByID(performanceID int64) {
	i := b.indexOf(performanceID)
	if i < 0 {
		return
	}

	b.tickets = append(b.tickets[:i], b.tickets[i+1:]...)
}

func (b *Basket) Get(performanceID int64) (Ticket, bool) {
	i := b.indexOf(performanceID)
	if i < 0 {
		return Ticket{}, false
	}

	return b.tickets[i], true
}

func (b *Basket) TicketCost(t Ticket) decimal.Decimal {
	return RoundMoney(t.Cost(b.concessionRate))
}

// TotalCost sums the unrounded ticket costs and floors the result to two decimals.
func (b *Basket) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, t := range b.tickets {
		total = total.Add(t.Cost(b.concessionRate))
	}

	return RoundMoney(total)
}

func (b *Basket) IsEmpty() bool {
	return len(b.tickets) == 0
}

func (b *Basket) Len() int {
	return len(b.tickets)
}

// List returns a copy; callers cannot mutate the basket through it.
func (b *Basket) List() []Ticket {
	out := make([]Ticket, len(b.tickets))
	copy(out, b.tickets)

	return out
}

func (b *Basket) Clear() {
	b.tickets = nil
}

func (b *Basket) indexOf(performanceID int64) int {
	for i, t := range b.tickets {
		if t.PerformanceID == performanceID {
			return i
		}
	}

	return -1
}
