package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
	"github.com/srgjo27/royale_boxoffice/internal/platform/metrics"
	"github.com/srgjo27/royale_boxoffice/internal/platform/retry"
)

// InventoryReconciler runs one checkout attempt: identity, payment, then seat
// decrements against the live catalog, all or nothing across the basket.
type InventoryReconciler struct {
	catalog      ports.Catalog
	registration ports.Registration
	payment      ports.PaymentAuthorizer
	bookings     ports.BookingRepository
	policy       retry.Policy
	now          func() time.Time
}

// NewInventoryReconciler accepts a nil bookings repository, in which case
// confirmations are not recorded.
func NewInventoryReconciler(
	catalog ports.Catalog,
	registration ports.Registration,
	payment ports.PaymentAuthorizer,
	bookings ports.BookingRepository,
	policy retry.Policy,
) *InventoryReconciler {
	return &InventoryReconciler{
		catalog:      catalog,
		registration: registration,
		payment:      payment,
		bookings:     bookings,
		policy:       policy,
		now:          time.Now,
	}
}

type reservation struct {
	performanceID int64
	seats         domain.SeatAllocation
}

// Checkout finalizes the patron's basket. profile is only used when the patron
// is not registered yet. On failure the returned error is a
// *domain.CheckoutError and neither the basket nor any seat count has changed.
func (r *InventoryReconciler) Checkout(ctx context.Context, patron *domain.Patron, profile *domain.Profile) (*domain.Confirmation, error) {
	basket := patron.Basket()
	if basket.IsEmpty() {
		return nil, domain.ErrEmptyBasket
	}

	start := time.Now()
	defer func() {
		metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	}()

	checkoutID := uuid.New()
	ctx = logging.WithFields(ctx, logrus.Fields{"checkout_id": checkoutID})

	tickets := basket.List()
	total := basket.TotalCost()

	r.logState(ctx, domain.AwaitingIdentity)
	if !patron.IsRegistered() {
		if profile == nil {
			return nil, r.abort(ctx, domain.AbortedIdentity, fmt.Errorf("%w: patron details required", domain.ErrRegistrationFailed))
		}

		if err := r.RegisterPatron(ctx, patron, *profile); err != nil {
			return nil, r.abort(ctx, domain.AbortedIdentity, err)
		}
	}

	patronID, _ := patron.ID()

	r.logState(ctx, domain.AwaitingPayment)
	approved, err := retry.Once(ctx, r.policy, func(ctx context.Context) (bool, error) {
		return r.payment.Authorize(ctx, total)
	})
	if err != nil {
		return nil, r.abort(ctx, domain.AbortedPayment, fmt.Errorf("%w: authorization failed: %w", domain.ErrPaymentDenied, err))
	}

	if !approved {
		return nil, r.abort(ctx, domain.AbortedPayment, fmt.Errorf("%w: amount %s", domain.ErrPaymentDenied, total.StringFixed(2)))
	}

	r.logState(ctx, domain.ReservingSeats)
	reserved := make([]reservation, 0, len(tickets))
	issued := make([]domain.IssuedTicket, 0, len(tickets))

	for _, t := range tickets {
		seats, err := r.reserve(ctx, t)
		if err != nil {
			r.rollback(ctx, reserved)
			return nil, r.abort(ctx, domain.AbortedCapacity, err)
		}

		reserved = append(reserved, reservation{performanceID: t.PerformanceID, seats: seats})
		issued = append(issued, domain.IssuedTicket{
			Ticket: t,
			Seats:  seats,
			Cost:   basket.TicketCost(t),
		})
	}

	confirmation := domain.Confirmation{
		ID:          checkoutID,
		PatronID:    patronID,
		Tickets:     issued,
		Total:       total,
		CommittedAt: r.now().UTC(),
	}

	if r.bookings != nil {
		r.logState(ctx, domain.RecordingBooking)
		_, err := retry.Once(ctx, r.policy, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, r.bookings.Save(ctx, confirmation)
		})
		if err != nil {
			r.rollback(ctx, reserved)
			return nil, r.abort(ctx, domain.AbortedRecording, fmt.Errorf("failed to record booking: %w", err))
		}
	}

	basket.Clear()

	metrics.CheckoutAttempts.WithLabelValues(string(domain.Committed)).Inc()
	metrics.SeatsCommitted.Add(float64(confirmation.SeatsCommitted()))

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"state":     domain.Committed,
		"patron_id": patronID,
		"tickets":   len(issued),
		"total":     total.StringFixed(2),
	}).Info("Checkout committed")

	return &confirmation, nil
}

// RegisterPatron calls the registration service and sets the patron's
// identity only when it returns a non-negative id.
func (r *InventoryReconciler) RegisterPatron(ctx context.Context, patron *domain.Patron, profile domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	id, err := retry.Once(ctx, r.policy, func(ctx context.Context) (int64, error) {
		return r.registration.Register(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationFailed) {
			return err
		}

		return fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, err)
	}

	if err := patron.Register(id, profile); err != nil {
		return err
	}

	logging.FromContext(ctx).WithField("patron_id", id).Info("Patron registered")

	return nil
}

// maxSplitAttempts bounds how often reserve re-reads a performance whose
// stalls/circle split went stale before the decrement landed.
const maxSplitAttempts = 5

// reserve re-reads the performance and takes the ticket's seats from it. Any
// failure, including an unreadable catalog, is reported as lack of capacity.
// A decrement refused because another checkout changed the split in between
// is retried on a fresh snapshot; it aborts only when the live counts no
// longer cover the ticket.
func (r *InventoryReconciler) reserve(ctx context.Context, t domain.Ticket) (domain.SeatAllocation, error) {
	id := t.PerformanceID
	log := logging.FromContext(ctx).WithField("performance_id", id)

	var lastErr error
	for attempt := 1; attempt <= maxSplitAttempts; attempt++ {
		live, err := retry.Do(ctx, r.policy, "catalog.FindByID", func(ctx context.Context) (*domain.Performance, error) {
			p, err := r.catalog.FindByID(ctx, id)
			if errors.Is(err, domain.ErrPerformanceNotFound) {
				return nil, retry.Permanent(err)
			}

			return p, err
		})
		if err != nil {
			return domain.SeatAllocation{}, fmt.Errorf("%w: re-reading performance %d: %w", domain.ErrCapacityExceeded, id, err)
		}

		seats, err := domain.AllocateSeats(*live, t.Count())
		if err != nil {
			return domain.SeatAllocation{}, fmt.Errorf("%w: %w", domain.ErrCapacityExceeded, err)
		}

		_, err = retry.Once(ctx, r.policy, func(ctx context.Context) (*domain.Performance, error) {
			return r.catalog.DecrementSeats(ctx, id, seats.Circle, seats.Stall)
		})
		if err == nil {
			return seats, nil
		}

		if !errors.Is(err, domain.ErrInsufficientSeats) {
			// The decrement may or may not have been applied. The snapshot it was
			// split from is logged so the counts can be reconciled by hand.
			metrics.SeatDecrementsUnknown.Inc()
			log.WithFields(logrus.Fields{
				"circle":          seats.Circle,
				"stall":           seats.Stall,
				"snapshot_circle": live.CircleSeats,
				"snapshot_stall":  live.StallSeats,
			}).WithError(err).Error("Seat decrement outcome unknown")

			return domain.SeatAllocation{}, fmt.Errorf("%w: performance %d: %w", domain.ErrCapacityExceeded, id, err)
		}

		lastErr = err
		log.WithField("attempt", attempt).Debug("Seat split went stale, re-reading performance")
	}

	return domain.SeatAllocation{}, fmt.Errorf("%w: performance %d: %w", domain.ErrCapacityExceeded, id, lastErr)
}

// rollback gives back seats taken earlier in this attempt, newest first. It
// runs even when ctx has been cancelled.
func (r *InventoryReconciler) rollback(ctx context.Context, reserved []reservation) {
	ctx = context.WithoutCancel(ctx)
	log := logging.FromContext(ctx)

	for i := len(reserved) - 1; i >= 0; i-- {
		res := reserved[i]

		_, err := retry.Once(ctx, r.policy, func(ctx context.Context) (*domain.Performance, error) {
			return r.catalog.RestoreSeats(ctx, res.performanceID, res.seats.Circle, res.seats.Stall)
		})
		if err != nil {
			log.WithFields(logrus.Fields{
				"performance_id": res.performanceID,
				"circle":         res.seats.Circle,
				"stall":          res.seats.Stall,
			}).WithError(err).Error("Failed to restore seats")
			metrics.SeatRestoreFailures.Inc()

			continue
		}

		log.WithField("performance_id", res.performanceID).Info("Seats restored")
	}
}

func (r *InventoryReconciler) abort(ctx context.Context, state domain.CheckoutState, err error) error {
	metrics.CheckoutAttempts.WithLabelValues(string(state)).Inc()
	logging.FromContext(ctx).WithField("state", state).WithError(err).Warn("Checkout aborted")

	return &domain.CheckoutError{State: state, Err: err}
}

func (r *InventoryReconciler) logState(ctx context.Context, state domain.CheckoutState) {
	logging.FromContext(ctx).WithField("state", state).Debug("Checkout state")
}
