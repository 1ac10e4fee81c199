package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MisakSofoyan1/product-app/internal/controller"
	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"
	"github.com/MisakSofoyan1/product-app/pkg/logger"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_sessions_active",
		Help: "Browsing sessions currently held in memory",
	})

	sessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_sessions_evicted_total",
		Help: "Browsing sessions evicted after being idle",
	})
)

// Session is one visitor's browsing page.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Controller *controller.Controller

	lastSeen time.Time
}

// SessionService keeps one page controller per browsing session and evicts
// sessions idle for longer than the TTL.
type SessionService struct {
	source       controller.Source
	logger       *slog.Logger
	ttl          time.Duration
	defaultLimit int
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionService creates a session store whose controllers read from
// source.
func NewSessionService(source controller.Source, logger *slog.Logger, ttl time.Duration, defaultLimit int) *SessionService {
	return &SessionService{
		source:       source,
		logger:       logger,
		ttl:          ttl,
		defaultLimit: defaultLimit,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
}

// Create opens a session and starts its first facet and product fetches.
func (s *SessionService) Create(ctx context.Context) *Session {
	id := uuid.New().String()
	ctx = logger.WithSessionID(ctx, id)

	sess := &Session{
		ID:        id,
		CreatedAt: s.now(),
		Controller: controller.New(s.source, s.defaultLimit,
			controller.WithLogger(s.logger.With(slog.String("session_id", id))),
		),
	}
	sess.lastSeen = sess.CreatedAt

	s.mu.Lock()
	s.sessions[id] = sess
	activeSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	sess.Controller.Start(ctx)

	s.logger.InfoContext(ctx, "session created", slog.String("session_id", id))
	return sess
}

// Get returns a live session and marks it as used.
func (s *SessionService) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// Delete closes a session and cancels its in-flight fetches.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		activeSessions.Set(float64(len(s.sessions)))
	}
	s.mu.Unlock()

	if !ok {
		return apperrors.NotFound("session", id)
	}
	sess.Controller.Close()

	s.logger.InfoContext(ctx, "session deleted", slog.String("session_id", id))
	return nil
}

// Len returns the number of live sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every session idle for longer than the TTL and returns how
// many were removed.
func (s *SessionService) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	activeSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Controller.Close()
	}
	if len(expired) > 0 {
		sessionsEvicted.Add(float64(len(expired)))
		s.logger.Info("evicted idle sessions", slog.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps idle sessions every interval until ctx is cancelled.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Close closes every session.
func (s *SessionService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	activeSessions.Set(0)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Controller.Close()
	}
}
