package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
)

const rule = "==========================================="

const mainMenu = rule + `
| Enter the number to select an option..  |
|                                         |
| 1 - Browse all available shows          |
| 2 - Find show by title                  |
| 3 - Find shows by date                  |
| 4 - View basket                         |
| 5 - Exit                                |
|                                         |
` + rule

const basketMenu = rule + `
| Enter the number to select an option..  |
|                                         |
| 1 - Remove a ticket from basket         |
| 2 - Checkout your basket                |
| 3 - Return to main menu                 |
|                                         |
` + rule

const checkoutMenu = rule + `
|                                         |
|   1 - Complete purchase                 |
|   2 - Return to main menu               |
|                                         |
` + rule

// BoxOffice is the menu-driven console front end for one patron session.
type BoxOffice struct {
	session  *services.Session
	in       ports.InputSource
	out      io.Writer
	attempts int
}

func NewBoxOffice(session *services.Session, in ports.InputSource, out io.Writer, attempts int) *BoxOffice {
	return &BoxOffice{session: session, in: in, out: out, attempts: attempts}
}

// Run shows the main menu until the patron exits or input ends.
func (b *BoxOffice) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(b.out, mainMenu)

		option, err := services.PromptInt(b.in, "", b.attempts)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedInput) {
				fmt.Fprintln(b.out, "Error: You must enter a digit")
				continue
			}

			return b.done(err)
		}

		switch option {
		case 1:
			err = b.browse(ctx)
		case 2:
			err = b.findByTitle(ctx)
		case 3:
			err = b.findByDate(ctx)
		case 4:
			err = b.basketMenu(ctx)
		case 5:
			fmt.Fprintln(b.out, "Closing..")
			return nil
		default:
			fmt.Fprintln(b.out, "Please choose an option between 1 and 5")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.done(err)
			}

			b.report(ctx, err)
		}
	}
}

func (b *BoxOffice) done(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(b.out, "Closing..")
		return nil
	}

	return err
}

func (b *BoxOffice) browse(ctx context.Context) error {
	found, err := b.session.Browse(ctx)
	if err != nil {
		return err
	}

	return b.showResults(found)
}

func (b *BoxOffice) findByTitle(ctx context.Context) error {
	title, err := services.PromptText(b.in, "Enter the show name:", b.attempts)
	if err != nil {
		return err
	}

	found, err := b.session.FindByTitle(ctx, title)
	if err != nil {
		return err
	}

	return b.showResults(found)
}

func (b *BoxOffice) findByDate(ctx context.Context) error {
	for i := 0; i < b.attempts; i++ {
		date, err := services.PromptText(b.in, "Enter the date of which you'd like to see shows for [dd-MM-yy]", b.attempts)
		if err != nil {
			return err
		}

		found, err := b.session.FindByDate(ctx, date)
		if errors.Is(err, domain.ErrMalformedInput) {
			fmt.Fprintln(b.out, "Dates must be entered as dd-MM-yy")
			continue
		}

		if err != nil {
			return err
		}

		return b.showResults(found)
	}

	return nil
}

func (b *BoxOffice) showResults(found []domain.Performance) error {
	if len(found) == 0 {
		fmt.Fprintln(b.out, "No show of that record")
		return nil
	}

	for _, p := range found {
		fmt.Fprintf(b.out, "\n[Name: %s\n [Description: %s]\n [Date: %s]\n [Genre: %s\t Language: %s\t Ticket cost: £%s]\n [Seats: %d circle, %d stalls]\n [ID: %d]\n",
			p.Title, p.Description, p.StartDateTime.Format("02-01-06 15:04"), p.Genre, p.Language,
			p.TicketPrice.StringFixed(2), p.CircleSeats, p.StallSeats, p.ID)
	}

	return b.selectForBasket()
}

// selectForBasket re-prompts for an id from the results; 0 returns to the menu.
func (b *BoxOffice) selectForBasket() error {
	for i := 0; i < b.attempts; i++ {
		id, err := services.PromptInt(b.in, "Enter the 'Performance ID' to add a performance to your basket, or 0 to return to the menu", b.attempts)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedInput) {
				fmt.Fprintln(b.out, "Returning to the menu")
				return nil
			}

			return err
		}

		if id == 0 {
			return nil
		}

		err = b.session.HoldForBasket(b.in, int64(id))
		switch {
		case err == nil:
			fmt.Fprintln(b.out, "Added to your basket.")
			return nil
		case errors.Is(err, domain.ErrNotInSearchResults):
			fmt.Fprintln(b.out, "There is no performance with this ID in your search results..")
		default:
			return err
		}
	}

	return nil
}

func (b *BoxOffice) printBasket() services.BasketView {
	view := b.session.Basket()

	fmt.Fprintf(b.out, "\nBasket size: %d\nBasket contents:\n\n", len(view.Lines))

	if len(view.Lines) == 0 {
		fmt.Fprintln(b.out, "Your basket is empty..")
		return view
	}

	for _, line := range view.Lines {
		t := line.Ticket
		fmt.Fprintf(b.out, "Performance ID: %d\t Show Title: %s\t Show Time: %s\n Tickets: %d x Full price tickets\t %d x Concessionary tickets\t Total: £%s\n",
			t.PerformanceID, t.Title, t.StartDateTime.Format("02-01-06 15:04"),
			t.FullPrice, t.Concession, line.Cost.StringFixed(2))
	}

	fmt.Fprintf(b.out, "\nBasket total: £%s\n", view.Total.StringFixed(2))

	return view
}

func (b *BoxOffice) basketMenu(ctx context.Context) error {
	view := b.printBasket()

	fmt.Fprintln(b.out, basketMenu)

	option, err := services.PromptInt(b.in, "", b.attempts)
	if err != nil {
		return err
	}

	switch option {
	case 1:
		id, err := services.PromptInt(b.in, "Enter the 'Performance ID' to remove a performance from your basket", b.attempts)
		if err != nil {
			return err
		}

		return b.session.RemoveFromBasketByID(int64(id))
	case 2:
		if len(view.Lines) == 0 {
			fmt.Fprintln(b.out, "Your basket is empty..")
			return nil
		}

		return b.checkout(ctx)
	}

	return nil
}

func (b *BoxOffice) checkout(ctx context.Context) error {
	b.printBasket()
	fmt.Fprintln(b.out, checkoutMenu)

	option, err := services.PromptInt(b.in, "", b.attempts)
	if err != nil || option != 1 {
		return err
	}

	var profile *domain.Profile
	if !b.session.IsRegistered() {
		fmt.Fprintln(b.out, "Please enter your details to complete the purchase.")

		profile, err = b.readProfile()
		if err != nil {
			return err
		}
	}

	confirmation, err := b.session.Checkout(ctx, profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(b.out, "Thanks for your purchase.\nConfirmation: %s\n", confirmation.ID)
	for _, t := range confirmation.Tickets {
		fmt.Fprintf(b.out, " %s: %d stalls, %d circle seats (£%s)\n",
			t.Title, t.Seats.Stall, t.Seats.Circle, t.Cost.StringFixed(2))
	}
	fmt.Fprintf(b.out, "Total paid: £%s\n\n", confirmation.Total.StringFixed(2))

	return nil
}

func (b *BoxOffice) readProfile() (*domain.Profile, error) {
	var p domain.Profile

	fields := []struct {
		prompt string
		dest   *string
	}{
		{"Enter your first name..", &p.FirstName},
		{"Enter your last name..", &p.LastName},
		{"Enter your house number..", &p.HouseNumber},
		{"Enter your street name..", &p.Street},
		{"Enter your postal code..", &p.PostalCode},
	}

	for _, f := range fields {
		v, err := services.PromptText(b.in, f.prompt, b.attempts)
		if err != nil {
			return nil, err
		}

		*f.dest = v
	}

	return &p, nil
}

// report prints a recoverable error; nothing here ends the session.
func (b *BoxOffice) report(ctx context.Context, err error) {
	logging.FromContext(ctx).WithError(err).Debug("Box office operation failed")

	var cerr *domain.CheckoutError
	switch {
	case errors.As(err, &cerr) && cerr.State == domain.AbortedIdentity:
		fmt.Fprintln(b.out, "Failed to register. Your basket has been kept.")
	case errors.As(err, &cerr) && cerr.State == domain.AbortedPayment:
		fmt.Fprintln(b.out, "Payment was not completed. Your basket has been kept.")
	case errors.As(err, &cerr) && cerr.State == domain.AbortedCapacity:
		fmt.Fprintln(b.out, "Sorry, there are no longer enough seats for your basket. Your basket has been kept.")
	case errors.As(err, &cerr):
		fmt.Fprintln(b.out, "We could not complete your purchase. Your basket has been kept.")
	case errors.Is(err, domain.ErrInvalidSelection):
		fmt.Fprintln(b.out, "Please choose at least one ticket.")
	case errors.Is(err, domain.ErrCapacityExceeded):
		fmt.Fprintln(b.out, "There are not enough seats left for that many tickets.")
	case errors.Is(err, domain.ErrMalformedInput):
		fmt.Fprintln(b.out, "Input not recognised, returning to the menu.")
	default:
		fmt.Fprintf(b.out, "Something went wrong: %s\n", strings.TrimSpace(err.Error()))
	}
}
