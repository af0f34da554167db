package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Save records a committed checkout with one item per ticket.
func (r *BookingRepository) Save(ctx context.Context, confirmation domain.Confirmation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	queryHeader := `
	INSERT INTO bookings (booking_id, customer_id, total_amount, committed_at)
	VALUES ($1, $2, $3, $4)
	`

	_, err = tx.ExecContext(ctx, queryHeader, confirmation.ID, confirmation.PatronID, confirmation.Total, confirmation.CommittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking header: %w", err)
	}

	queryItem := `
	INSERT INTO booking_items (booking_id, perf_id, full_price_count, concession_count, seats_circle, seats_stall, cost)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	stmt, err := tx.PrepareContext(ctx, queryItem)
	if err != nil {
		return fmt.Errorf("failed to prepare item statement: %w", err)
	}

	defer stmt.Close()

	for _, item := range confirmation.Tickets {
		_, err := stmt.ExecContext(ctx, confirmation.ID, item.PerformanceID, item.FullPrice, item.Concession,
			item.Seats.Circle, item.Seats.Stall, item.Cost)
		if err != nil {
			return fmt.Errorf("failed to insert booking item for performance %d: %w", item.PerformanceID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
