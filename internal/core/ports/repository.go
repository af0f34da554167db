package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

type Catalog interface {
	FindAll(ctx context.Context) ([]domain.Performance, error)
	FindByTitle(ctx context.Context, title string) ([]domain.Performance, error)
	FindByDate(ctx context.Context, date time.Time) ([]domain.Performance, error)
	// FindByID is a live read; implementations must not serve it from a cache.
	FindByID(ctx context.Context, performanceID int64) (*domain.Performance, error)
	// DecrementSeats applies both deltas atomically, or neither, returning
	// domain.ErrInsufficientSeats when the live counts do not cover them.
	DecrementSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error)
	RestoreSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error)
}

type Registration interface {
	Register(ctx context.Context, profile domain.Profile) (int64, error)
}

type PaymentAuthorizer interface {
	Authorize(ctx context.Context, amount decimal.Decimal) (bool, error)
}

type BookingRepository interface {
	Save(ctx context.Context, confirmation domain.Confirmation) error
}

// InputSource supplies the next token for a prompt. Implementations return
// domain.ErrMalformedInput when the token cannot be read as requested.
type InputSource interface {
	NextInt(prompt string) (int, error)
	NextText(prompt string) (string, error)
}
