package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
	"github.com/srgjo27/royale_boxoffice/internal/platform/metrics"
)

// Session is one patron's visit: the patron with their basket, the results of
// the latest search and the checkout guard. It is passed explicitly to every
// operation instead of living in a process-wide variable.
type Session struct {
	ID uuid.UUID

	catalog     ports.Catalog
	reconciler  *InventoryReconciler
	maxAttempts int

	mu           sync.Mutex
	patron       *domain.Patron
	results      []domain.Performance
	lastCheckout domain.CheckoutState

	checkingOut atomic.Bool
	lastActive  atomic.Int64
}

func NewSession(catalog ports.Catalog, reconciler *InventoryReconciler, concessionRate decimal.Decimal, maxAttempts int) *Session {
	s := &Session{
		ID:           uuid.New(),
		catalog:      catalog,
		reconciler:   reconciler,
		maxAttempts:  maxAttempts,
		patron:       domain.NewPatron(concessionRate),
		lastCheckout: domain.CheckoutIdle,
	}
	s.touch()

	return s
}

func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

func (s *Session) lock() error {
	if s.checkingOut.Load() {
		return domain.ErrCheckoutInProgress
	}

	s.mu.Lock()
	s.touch()

	return nil
}

func (s *Session) Browse(ctx context.Context) ([]domain.Performance, error) {
	return s.search(ctx, func(ctx context.Context) ([]domain.Performance, error) {
		return s.catalog.FindAll(ctx)
	})
}

func (s *Session) FindByTitle(ctx context.Context, title string) ([]domain.Performance, error) {
	return s.search(ctx, func(ctx context.Context) ([]domain.Performance, error) {
		return s.catalog.FindByTitle(ctx, title)
	})
}

// FindByDate takes the date as the patron typed it (dd-MM-yy).
func (s *Session) FindByDate(ctx context.Context, date string) ([]domain.Performance, error) {
	day, err := domain.ParseShowDate(date)
	if err != nil {
		return nil, err
	}

	return s.search(ctx, func(ctx context.Context) ([]domain.Performance, error) {
		return s.catalog.FindByDate(ctx, day)
	})
}

// search replaces the previous results, even when the new search finds nothing.
func (s *Session) search(ctx context.Context, find func(ctx context.Context) ([]domain.Performance, error)) ([]domain.Performance, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	found, err := find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search performances: %w", err)
	}

	s.results = found

	return append([]domain.Performance(nil), found...), nil
}

func (s *Session) SearchResults() []domain.Performance {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.Performance(nil), s.results...)
}

// Hold puts a performance from the latest search results in the basket.
func (s *Session) Hold(performanceID int64, fullPrice, concession int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	return s.hold(performanceID, fullPrice, concession)
}

func (s *Session) hold(performanceID int64, fullPrice, concession int) error {
	perf, ok := lo.Find(s.results, func(p domain.Performance) bool { return p.ID == performanceID })
	if !ok {
		metrics.BasketHolds.WithLabelValues("not_in_results").Inc()
		return fmt.Errorf("%w: %d", domain.ErrNotInSearchResults, performanceID)
	}

	if err := s.patron.Hold(perf, fullPrice, concession); err != nil {
		metrics.BasketHolds.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.BasketHolds.WithLabelValues("held").Inc()

	return nil
}

// HoldForBasket prompts for ticket counts and holds the performance.
func (s *Session) HoldForBasket(in ports.InputSource, performanceID int64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	return s.holdForBasket(in, performanceID)
}

func (s *Session) holdForBasket(in ports.InputSource, performanceID int64) error {
	if !lo.ContainsBy(s.results, func(p domain.Performance) bool { return p.ID == performanceID }) {
		return fmt.Errorf("%w: %d", domain.ErrNotInSearchResults, performanceID)
	}

	full, err := PromptCount(in, "> How many full price tickets?", s.maxAttempts)
	if err != nil {
		return err
	}

	concession, err := PromptCount(in, "> How many concessionary tickets?", s.maxAttempts)
	if err != nil {
		return err
	}

	return s.hold(performanceID, full, concession)
}

func (s *Session) RemoveFromBasketByID(performanceID int64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.patron.RemoveFromBasketByID(performanceID)

	return nil
}

type BasketLine struct {
	Ticket domain.Ticket
	Cost   decimal.Decimal
}

type BasketView struct {
	Lines        []BasketLine
	Total        decimal.Decimal
	Registered   bool
	LastCheckout domain.CheckoutState
}

func (s *Session) Basket() BasketView {
	s.mu.Lock()
	defer s.mu.Unlock()

	basket := s.patron.Basket()

	return BasketView{
		Lines: lo.Map(basket.List(), func(t domain.Ticket, _ int) BasketLine {
			return BasketLine{Ticket: t, Cost: basket.TicketCost(t)}
		}),
		Total:        basket.TotalCost(),
		Registered:   s.patron.IsRegistered(),
		LastCheckout: s.lastCheckout,
	}
}

func (s *Session) IsRegistered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.patron.IsRegistered()
}

// Register registers the patron ahead of checkout. It returns the patron id.
func (s *Session) Register(ctx context.Context, profile domain.Profile) (int64, error) {
	if err := s.lock(); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	if id, ok := s.patron.ID(); ok && s.patron.IsRegistered() {
		return id, nil
	}

	if err := s.reconciler.RegisterPatron(ctx, s.patron, profile); err != nil {
		return 0, err
	}

	id, _ := s.patron.ID()

	return id, nil
}

// Checkout runs a checkout attempt. Only one attempt may run per session;
// a concurrent call fails with domain.ErrCheckoutInProgress.
func (s *Session) Checkout(ctx context.Context, profile *domain.Profile) (*domain.Confirmation, error) {
	if !s.checkingOut.CompareAndSwap(false, true) {
		return nil, domain.ErrCheckoutInProgress
	}
	defer s.checkingOut.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	confirmation, err := s.reconciler.Checkout(ctx, s.patron, profile)
	if err != nil {
		if cerr, ok := lo.ErrorsAs[*domain.CheckoutError](err); ok {
			s.lastCheckout = cerr.State
		}

		return nil, err
	}

	s.lastCheckout = domain.Committed

	return confirmation, nil
}
