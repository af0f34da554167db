package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitAuthorizer_Authorize(t *testing.T) {
	tests := []struct {
		name   string
		limit  string
		amount string
		want   bool
	}{
		{name: "unlimited approves", limit: "0", amount: "1500.00", want: true},
		{name: "within limit", limit: "100", amount: "99.99", want: true},
		{name: "at limit", limit: "100", amount: "100.00", want: true},
		{name: "over limit", limit: "100", amount: "100.01", want: false},
		{name: "negative amount", limit: "0", amount: "-1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewLimitAuthorizer(decimal.RequireFromString(tt.limit))

			got, err := a.Authorize(context.Background(), decimal.RequireFromString(tt.amount))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimitAuthorizer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approved, err := NewLimitAuthorizer(decimal.Zero).Authorize(ctx, decimal.NewFromInt(1))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, approved)
}
