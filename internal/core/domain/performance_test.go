package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

func TestAllocateSeats(t *testing.T) {
	tests := []struct {
		name          string
		circle, stall int
		count         int
		want          domain.SeatAllocation
		wantErr       error
	}{
		{name: "stalls first", circle: 10, stall: 10, count: 4, want: domain.SeatAllocation{Stall: 4}},
		{name: "overflow into circle", circle: 10, stall: 3, count: 5, want: domain.SeatAllocation{Circle: 2, Stall: 3}},
		{name: "circle only", circle: 2, stall: 0, count: 2, want: domain.SeatAllocation{Circle: 2}},
		{name: "not enough", circle: 1, stall: 1, count: 3, wantErr: domain.ErrInsufficientSeats},
		{name: "nothing requested", circle: 1, stall: 1, count: 0, wantErr: domain.ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.AllocateSeats(domain.Performance{ID: 1, CircleSeats: tt.circle, StallSeats: tt.stall}, tt.count)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, got.Total())
		})
	}
}

func TestPerformance_Validate(t *testing.T) {
	valid := domain.Performance{TicketPrice: decimal.NewFromInt(10), CircleSeats: domain.MaxCircleSeats, StallSeats: domain.MaxStallSeats}
	assert.NoError(t, valid.Validate())

	tooManyCircle := valid
	tooManyCircle.CircleSeats = domain.MaxCircleSeats + 1
	assert.ErrorIs(t, tooManyCircle.Validate(), domain.ErrInvalidSeatCount)

	negativeStall := valid
	negativeStall.StallSeats = -1
	assert.ErrorIs(t, negativeStall.Validate(), domain.ErrInvalidSeatCount)

	negativePrice := valid
	negativePrice.TicketPrice = decimal.NewFromInt(-1)
	assert.Error(t, negativePrice.Validate())
}

func TestParseShowDate(t *testing.T) {
	got, err := domain.ParseShowDate(" 24-12-26 ")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC), got)

	_, err = domain.ParseShowDate("2026-12-24")
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}
