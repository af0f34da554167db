package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports/mocks"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
)

func TestSession_SearchReplacesResults(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)
	ctx := context.Background()

	m.catalog.On("FindAll", mock.Anything).Return([]domain.Performance{perf(1, "10", 5, 5), perf(2, "10", 5, 5)}, nil)
	m.catalog.On("FindByTitle", mock.Anything, "mouse").Return([]domain.Performance{perf(3, "10", 5, 5)}, nil)

	_, err := sess.Browse(ctx)
	require.NoError(t, err)
	assert.Len(t, sess.SearchResults(), 2)

	found, err := sess.FindByTitle(ctx, "mouse")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	assert.ErrorIs(t, sess.Hold(1, 1, 0), domain.ErrNotInSearchResults)
	assert.NoError(t, sess.Hold(3, 1, 0))
}

func TestSession_FindByDate(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)

	day := time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC)
	m.catalog.On("FindByDate", mock.Anything, day).Return(nil, nil)

	found, err := sess.FindByDate(context.Background(), "31-10-26")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = sess.FindByDate(context.Background(), "tomorrow")
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestSession_SearchFailure(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)

	m.catalog.On("FindAll", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := sess.Browse(context.Background())

	assert.ErrorContains(t, err, "connection refused")
}

func TestSession_HoldForBasket_PromptsForCounts(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)
	in := mocks.NewInputSource(t)

	m.catalog.On("FindAll", mock.Anything).Return([]domain.Performance{perf(1, "10.00", 5, 5)}, nil)
	_, err := sess.Browse(context.Background())
	require.NoError(t, err)

	in.On("NextInt", "> How many full price tickets?").Return(0, domain.ErrMalformedInput).Once()
	in.On("NextInt", "> How many full price tickets?").Return(2, nil).Once()
	in.On("NextInt", "> How many concessionary tickets?").Return(-1, nil).Once()
	in.On("NextInt", "> How many concessionary tickets?").Return(1, nil).Once()

	require.NoError(t, sess.HoldForBasket(in, 1))

	view := sess.Basket()
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Ticket.FullPrice)
	assert.Equal(t, 1, view.Lines[0].Ticket.Concession)
	assert.Equal(t, "25.00", view.Total.StringFixed(2))
}

func TestSession_HoldForBasket_NotInResults(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)

	err := sess.HoldForBasket(mocks.NewInputSource(t), 5)

	assert.ErrorIs(t, err, domain.ErrNotInSearchResults)
}

func TestSession_RemoveFromBasketByID(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)

	m.catalog.On("FindAll", mock.Anything).Return([]domain.Performance{perf(1, "10.00", 5, 5)}, nil)
	_, err := sess.Browse(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.Hold(1, 1, 0))

	require.NoError(t, sess.RemoveFromBasketByID(1))
	require.NoError(t, sess.RemoveFromBasketByID(1))

	assert.Empty(t, sess.Basket().Lines)
}

func TestSession_Register(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)
	profile := testProfile()

	m.registration.On("Register", mock.Anything, profile).Return(int64(11), nil).Once()

	id, err := sess.Register(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	id, err = sess.Register(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id, "already registered patrons are not registered twice")
	assert.True(t, sess.IsRegistered())
}

func TestSession_SingleCheckoutAtATime(t *testing.T) {
	reconciler, m := newReconciler(t)
	sess := services.NewSession(m.catalog, reconciler, half, 3)
	profile := testProfile()

	live := perf(1, "10.00", 5, 5)
	m.catalog.On("FindAll", mock.Anything).Return([]domain.Performance{live}, nil)
	_, err := sess.Browse(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.Hold(1, 1, 0))

	m.registration.On("Register", mock.Anything, profile).Return(int64(1), nil)
	_, err = sess.Register(context.Background(), profile)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})

	m.payment.On("Authorize", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(false, nil)

	done := make(chan error)
	go func() {
		_, err := sess.Checkout(context.Background(), nil)
		done <- err
	}()

	<-started
	_, err = sess.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrCheckoutInProgress)
	assert.ErrorIs(t, sess.Hold(1, 2, 0), domain.ErrCheckoutInProgress)

	close(release)
	requireCheckoutError(t, <-done, domain.AbortedPayment)
	assert.NoError(t, sess.Hold(1, 2, 0))
}
