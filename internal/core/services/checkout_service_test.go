package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports/mocks"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
	"github.com/srgjo27/royale_boxoffice/internal/platform/metrics"
	"github.com/srgjo27/royale_boxoffice/internal/platform/retry"
)

var half = decimal.RequireFromString("0.5")

var testPolicy = retry.Policy{Attempts: 2, Timeout: time.Second, InitialInterval: time.Millisecond}

type reconcilerMocks struct {
	catalog      *mocks.Catalog
	registration *mocks.Registration
	payment      *mocks.PaymentAuthorizer
	bookings     *mocks.BookingRepository
}

func newReconciler(t *testing.T) (*services.InventoryReconciler, reconcilerMocks) {
	m := reconcilerMocks{
		catalog:      mocks.NewCatalog(t),
		registration: mocks.NewRegistration(t),
		payment:      mocks.NewPaymentAuthorizer(t),
		bookings:     mocks.NewBookingRepository(t),
	}

	return services.NewInventoryReconciler(m.catalog, m.registration, m.payment, m.bookings, testPolicy), m
}

func testProfile() domain.Profile {
	return domain.Profile{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		HouseNumber: "12",
		Street:      "St James's Square",
		PostalCode:  "SW1Y 4JH",
	}
}

func perf(id int64, price string, circle, stall int) domain.Performance {
	return domain.Performance{
		ID:          id,
		Title:       "Hamlet",
		TicketPrice: decimal.RequireFromString(price),
		CircleSeats: circle,
		StallSeats:  stall,
	}
}

func registeredPatron(t *testing.T) *domain.Patron {
	patron := domain.NewPatron(half)
	require.NoError(t, patron.Register(7, testProfile()))

	return patron
}

func amount(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func requireCheckoutError(t *testing.T, err error, state domain.CheckoutState) *domain.CheckoutError {
	t.Helper()

	var cerr *domain.CheckoutError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, state, cerr.State)

	return cerr
}

func TestCheckout_Success(t *testing.T) {
	reconciler, m := newReconciler(t)
	ctx := context.Background()

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 2, 1))

	live := perf(1, "10.00", 5, 2)
	after := perf(1, "10.00", 4, 0)

	m.payment.On("Authorize", mock.Anything, amount("25.00")).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&live, nil)
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 1, 2).Return(&after, nil)
	m.bookings.On("Save", mock.Anything, mock.AnythingOfType("domain.Confirmation")).Return(nil)

	confirmation, err := reconciler.Checkout(ctx, patron, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(7), confirmation.PatronID)
	assert.Equal(t, "25.00", confirmation.Total.StringFixed(2))
	require.Len(t, confirmation.Tickets, 1)
	assert.Equal(t, domain.SeatAllocation{Circle: 1, Stall: 2}, confirmation.Tickets[0].Seats)
	assert.Equal(t, "25.00", confirmation.Tickets[0].Cost.StringFixed(2))
	assert.Equal(t, 3, confirmation.SeatsCommitted())
	assert.True(t, patron.Basket().IsEmpty())
}

func TestCheckout_EmptyBasket(t *testing.T) {
	reconciler, _ := newReconciler(t)

	_, err := reconciler.Checkout(context.Background(), registeredPatron(t), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyBasket)
}

func TestCheckout_RegistersUnknownPatron(t *testing.T) {
	reconciler, m := newReconciler(t)
	profile := testProfile()

	patron := domain.NewPatron(half)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))

	live := perf(1, "10.00", 5, 5)

	m.registration.On("Register", mock.Anything, profile).Return(int64(99), nil)
	m.payment.On("Authorize", mock.Anything, amount("10.00")).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&live, nil)
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 0, 1).Return(&live, nil)
	m.bookings.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Confirmation) bool {
		return c.PatronID == 99
	})).Return(nil)

	confirmation, err := reconciler.Checkout(context.Background(), patron, &profile)

	require.NoError(t, err)
	assert.Equal(t, int64(99), confirmation.PatronID)
	assert.True(t, patron.IsRegistered())
}

func TestCheckout_AbortsWithoutProfile(t *testing.T) {
	reconciler, _ := newReconciler(t)

	patron := domain.NewPatron(half)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))
	before := patron.Basket().List()

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedIdentity)
	assert.ErrorIs(t, err, domain.ErrRegistrationFailed)
	assert.Equal(t, before, patron.Basket().List())
}

func TestCheckout_RegistrationFailure(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		err  error
	}{
		{name: "service error", id: -1, err: errors.New("connection refused")},
		{name: "negative id", id: -1, err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reconciler, m := newReconciler(t)
			profile := testProfile()

			patron := domain.NewPatron(half)
			require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))

			m.registration.On("Register", mock.Anything, profile).Return(tt.id, tt.err)

			_, err := reconciler.Checkout(context.Background(), patron, &profile)

			requireCheckoutError(t, err, domain.AbortedIdentity)
			assert.ErrorIs(t, err, domain.ErrRegistrationFailed)
			assert.False(t, patron.IsRegistered())
			assert.Equal(t, 1, patron.Basket().Len())
		})
	}
}

func TestCheckout_PaymentDenied(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 1))
	before := patron.Basket().List()

	m.payment.On("Authorize", mock.Anything, amount("15.00")).Return(false, nil)

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedPayment)
	assert.ErrorIs(t, err, domain.ErrPaymentDenied)
	assert.Equal(t, before, patron.Basket().List())
	m.catalog.AssertNotCalled(t, "DecrementSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_PaymentError(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(false, context.DeadlineExceeded)

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedPayment)
	assert.ErrorIs(t, err, domain.ErrPaymentDenied)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCheckout_CapacityRollsBackEarlierDecrements(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 3, 0))
	require.NoError(t, patron.Hold(perf(2, "20.00", 5, 5), 2, 0))
	before := patron.Basket().List()

	first := perf(1, "10.00", 5, 2)
	second := perf(2, "20.00", 1, 0)

	m.payment.On("Authorize", mock.Anything, amount("70.00")).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&first, nil)
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 1, 2).Return(&first, nil)
	m.catalog.On("FindByID", mock.Anything, int64(2)).Return(&second, nil)
	m.catalog.On("RestoreSeats", mock.Anything, int64(1), 1, 2).Return(&first, nil).Once()

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedCapacity)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, before, patron.Basket().List())
	m.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCheckout_LostRaceOnDecrement(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))
	require.NoError(t, patron.Hold(perf(2, "10.00", 5, 5), 1, 0))

	one := perf(1, "10.00", 5, 5)
	two := perf(2, "10.00", 5, 5)

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&one, nil)
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 0, 1).Return(&one, nil)
	gone := perf(2, "10.00", 0, 0)
	m.catalog.On("FindByID", mock.Anything, int64(2)).Return(&two, nil).Once()
	m.catalog.On("DecrementSeats", mock.Anything, int64(2), 0, 1).Return(nil, domain.ErrInsufficientSeats).Once()
	m.catalog.On("FindByID", mock.Anything, int64(2)).Return(&gone, nil).Once()
	m.catalog.On("RestoreSeats", mock.Anything, int64(1), 0, 1).Return(&one, nil).Once()

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedCapacity)
	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.Equal(t, 2, patron.Basket().Len())
}

func TestCheckout_UnreadableCatalogIsCapacityFailure(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(nil, errors.New("connection reset")).Times(testPolicy.Attempts)

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedCapacity)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 1, patron.Basket().Len())
}

func TestCheckout_RetriesTransientCatalogRead(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))

	live := perf(1, "10.00", 5, 5)

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(nil, errors.New("connection reset")).Once()
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&live, nil).Once()
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 0, 1).Return(&live, nil)
	m.bookings.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	assert.NoError(t, err)
}

func TestCheckout_RecordingFailureRollsBack(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 2, 0))

	live := perf(1, "10.00", 5, 5)

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&live, nil)
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 0, 2).Return(&live, nil)
	m.bookings.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	m.catalog.On("RestoreSeats", mock.Anything, int64(1), 0, 2).Return(&live, nil).Once()

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedRecording)
	assert.Equal(t, 1, patron.Basket().Len())
}

func TestCheckout_StaleSplitIsRecomputed(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 2, 2), 2, 0))

	snapshot := perf(1, "10.00", 2, 2)
	live := perf(1, "10.00", 2, 0)

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&snapshot, nil).Once()
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 0, 2).Return(nil, domain.ErrInsufficientSeats).Once()
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&live, nil).Once()
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 2, 0).Return(&live, nil).Once()
	m.bookings.On("Save", mock.Anything, mock.Anything).Return(nil)

	confirmation, err := reconciler.Checkout(context.Background(), patron, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.SeatAllocation{Circle: 2}, confirmation.Tickets[0].Seats)
	assert.True(t, patron.Basket().IsEmpty())
}

func TestCheckout_UnknownDecrementOutcomeIsCounted(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))

	live := perf(1, "10.00", 5, 5)
	before := testutil.ToFloat64(metrics.SeatDecrementsUnknown)

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&live, nil).Once()
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 0, 1).Return(nil, context.DeadlineExceeded).Once()

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedCapacity)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SeatDecrementsUnknown))
	m.catalog.AssertNotCalled(t, "RestoreSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_FailedRestoreIsCounted(t *testing.T) {
	reconciler, m := newReconciler(t)

	patron := registeredPatron(t)
	require.NoError(t, patron.Hold(perf(1, "10.00", 5, 5), 1, 0))

	live := perf(1, "10.00", 5, 5)
	before := testutil.ToFloat64(metrics.SeatRestoreFailures)

	m.payment.On("Authorize", mock.Anything, mock.Anything).Return(true, nil)
	m.catalog.On("FindByID", mock.Anything, int64(1)).Return(&live, nil)
	m.catalog.On("DecrementSeats", mock.Anything, int64(1), 0, 1).Return(&live, nil)
	m.bookings.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	m.catalog.On("RestoreSeats", mock.Anything, int64(1), 0, 1).Return(nil, errors.New("connection reset")).Once()

	_, err := reconciler.Checkout(context.Background(), patron, nil)

	requireCheckoutError(t, err, domain.AbortedRecording)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SeatRestoreFailures))
}
