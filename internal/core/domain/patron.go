package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	PostalCode  string `json:"postal_code"`
}

func (p Profile) Validate() error {
	fields := []struct{ name, value string }{
		{"first name", p.FirstName},
		{"last name", p.LastName},
		{"house number", p.HouseNumber},
		{"street", p.Street},
		{"postal code", p.PostalCode},
	}

	var errs []error
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, errors.Join(errs...))
	}

	return nil
}

// Patron owns one basket for the whole session; registering does not reset it.
type Patron struct {
	id      *int64
	profile Profile
	basket  *Basket
}

func NewPatron(concessionRate decimal.Decimal) *Patron {
	return &Patron{basket: NewBasket(concessionRate)}
}

func (p *Patron) Basket() *Basket {
	return p.basket
}

func (p *Patron) Profile() Profile {
	return p.profile
}

func (p *Patron) ID() (int64, bool) {
	if p.id == nil {
		return 0, false
	}

	return *p.id, true
}

// IsRegistered reports whether identity is set. An unset first name is the
// "needs registration" signal.
func (p *Patron) IsRegistered() bool {
	return p.profile.FirstName != "" && p.id != nil
}

// Register records the identity returned by the registration service. A
// negative id means the registration failed and leaves the patron untouched.
func (p *Patron) Register(id int64, profile Profile) error {
	if id < 0 {
		return fmt.Errorf("%w: registration returned id %d", ErrRegistrationFailed, id)
	}

	if err := profile.Validate(); err != nil {
		return err
	}

	p.id = &id
	p.profile = profile

	return nil
}

func (p *Patron) Hold(perf Performance, fullPrice, concession int) error {
	return p.basket.AddOrUpdate(perf, fullPrice, concession)
}

func (p *Patron) RemoveFromBasketByID(performanceID int64) {
	p.basket.RemoveByID(performanceID)
}
