package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
)

// LimitAuthorizer approves any amount up to Max. A zero Max approves everything.
type LimitAuthorizer struct {
	Max decimal.Decimal
}

func NewLimitAuthorizer(limit decimal.Decimal) *LimitAuthorizer {
	return &LimitAuthorizer{Max: limit}
}

func (a *LimitAuthorizer) Authorize(ctx context.Context, amount decimal.Decimal) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	approved := !amount.IsNegative() && (a.Max.IsZero() || amount.LessThanOrEqual(a.Max))

	logging.FromContext(ctx).WithField("amount", amount.StringFixed(2)).
		WithField("approved", approved).Info("Payment authorization")

	return approved, nil
}
