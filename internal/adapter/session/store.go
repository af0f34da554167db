package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
	"github.com/srgjo27/royale_boxoffice/internal/platform/metrics"
)

type Factory func() *services.Session

// Store keeps HTTP patron sessions in memory and evicts idle ones.
type Store struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*services.Session
	newSession Factory
	idleTTL    time.Duration
	now        func() time.Time
}

func NewStore(newSession Factory, idleTTL time.Duration) *Store {
	return &Store{
		sessions:   make(map[uuid.UUID]*services.Session),
		newSession: newSession,
		idleTTL:    idleTTL,
		now:        time.Now,
	}
}

func (s *Store) Create() *services.Session {
	sess := s.newSession()

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))

	return sess
}

func (s *Store) Get(id uuid.UUID) (*services.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return sess, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// RunBackgroundCleanup evicts idle sessions every interval until ctx is done.
func (s *Store) RunBackgroundCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logrus.WithField("interval", interval).Info("Session cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Session cleanup worker stopped")
			return
		case <-ticker.C:
			if n := s.EvictIdle(); n > 0 {
				logrus.WithField("evicted", n).Info("Idle sessions evicted")
			}
		}
	}
}

// EvictIdle drops sessions untouched for longer than the idle TTL and returns
// how many were dropped. Baskets of evicted sessions never held inventory.
func (s *Store) EvictIdle() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))

	return evicted
}
