package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

const performanceColumns = `perf_id, show_title, show_description, show_genre, primary_language,
	perf_date, ticket_price, seats_circle, seats_stall`

type performanceRow struct {
	ID          int64           `db:"perf_id"`
	Title       string          `db:"show_title"`
	Description string          `db:"show_description"`
	Genre       string          `db:"show_genre"`
	Language    string          `db:"primary_language"`
	Date        time.Time       `db:"perf_date"`
	TicketPrice decimal.Decimal `db:"ticket_price"`
	CircleSeats int             `db:"seats_circle"`
	StallSeats  int             `db:"seats_stall"`
}

func (r performanceRow) toDomain() domain.Performance {
	return domain.Performance{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Genre:         r.Genre,
		Language:      r.Language,
		StartDateTime: r.Date,
		TicketPrice:   r.TicketPrice,
		CircleSeats:   r.CircleSeats,
		StallSeats:    r.StallSeats,
	}
}

// PerformanceRepository is the Postgres catalog. Seat changes are single
// conditional UPDATEs, so concurrent checkouts cannot drive counts negative.
type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Create(ctx context.Context, p domain.Performance) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	query := `
	INSERT INTO performances (show_title, show_description, show_genre, primary_language,
		perf_date, ticket_price, seats_circle, seats_stall)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING perf_id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, p.Title, p.Description, p.Genre, p.Language,
		p.StartDateTime, p.TicketPrice, p.CircleSeats, p.StallSeats).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert performance: %w", err)
	}

	return id, nil
}

func (r *PerformanceRepository) FindAll(ctx context.Context) ([]domain.Performance, error) {
	return r.selectPerformances(ctx, `
	SELECT `+performanceColumns+`
	FROM performances
	ORDER BY perf_date, perf_id
	`)
}

func (r *PerformanceRepository) FindByTitle(ctx context.Context, title string) ([]domain.Performance, error) {
	return r.selectPerformances(ctx, `
	SELECT `+performanceColumns+`
	FROM performances
	WHERE show_title ILIKE '%' || $1 || '%'
	ORDER BY perf_date, perf_id
	`, title)
}

func (r *PerformanceRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Performance, error) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return r.selectPerformances(ctx, `
	SELECT `+performanceColumns+`
	FROM performances
	WHERE perf_date >= $1 AND perf_date < $2
	ORDER BY perf_date, perf_id
	`, start, start.AddDate(0, 0, 1))
}

func (r *PerformanceRepository) FindByID(ctx context.Context, performanceID int64) (*domain.Performance, error) {
	var row performanceRow
	err := r.db.GetContext(ctx, &row, `
	SELECT `+performanceColumns+`
	FROM performances
	WHERE perf_id = $1
	`, performanceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrPerformanceNotFound, performanceID)
		}

		return nil, err
	}

	p := row.toDomain()

	return &p, nil
}

func (r *PerformanceRepository) DecrementSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error) {
	if circle < 0 || stall < 0 {
		return nil, fmt.Errorf("%w: negative decrement", domain.ErrInvalidSeatCount)
	}

	query := `
	UPDATE performances
	SET seats_circle = seats_circle - $2,
		seats_stall = seats_stall - $3
	WHERE perf_id = $1 AND seats_circle >= $2 AND seats_stall >= $3
	RETURNING ` + performanceColumns

	p, err := r.updateSeats(ctx, query, performanceID, circle, stall)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainMiss(ctx, performanceID, domain.ErrInsufficientSeats)
	}

	return p, err
}

func (r *PerformanceRepository) RestoreSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error) {
	if circle < 0 || stall < 0 {
		return nil, fmt.Errorf("%w: negative restore", domain.ErrInvalidSeatCount)
	}

	query := fmt.Sprintf(`
	UPDATE performances
	SET seats_circle = seats_circle + $2,
		seats_stall = seats_stall + $3
	WHERE perf_id = $1 AND seats_circle + $2 <= %d AND seats_stall + $3 <= %d
	RETURNING `+performanceColumns, domain.MaxCircleSeats, domain.MaxStallSeats)

	p, err := r.updateSeats(ctx, query, performanceID, circle, stall)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainMiss(ctx, performanceID, domain.ErrInvalidSeatCount)
	}

	return p, err
}

func (r *PerformanceRepository) updateSeats(ctx context.Context, query string, performanceID int64, circle, stall int) (*domain.Performance, error) {
	var row performanceRow
	if err := r.db.GetContext(ctx, &row, query, performanceID, circle, stall); err != nil {
		return nil, err
	}

	p := row.toDomain()

	return &p, nil
}

// explainMiss tells a missing performance apart from a failed seat condition.
func (r *PerformanceRepository) explainMiss(ctx context.Context, performanceID int64, conditionErr error) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM performances WHERE perf_id = $1)`, performanceID)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: %d", domain.ErrPerformanceNotFound, performanceID)
	}

	return fmt.Errorf("%w: performance %d", conditionErr, performanceID)
}

func (r *PerformanceRepository) selectPerformances(ctx context.Context, query string, args ...any) ([]domain.Performance, error) {
	var rows []performanceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row performanceRow, _ int) domain.Performance {
		return row.toDomain()
	}), nil
}
