package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type sessionSweeper interface {
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// Sweeper periodically deletes expired sessions on a cron schedule.
type Sweeper struct {
	sessions sessionSweeper
	logger   *zap.Logger
	onSwept  func(n int64)

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// NewSweeper validates schedule (standard cron or a descriptor such as
// "@every 15m") and returns a stopped sweeper. onSwept may be nil.
func NewSweeper(sessions sessionSweeper, schedule string, logger *zap.Logger, onSwept func(n int64)) (*Sweeper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sweeper{
		sessions: sessions,
		logger:   logger,
		onSwept:  onSwept,
		cron:     cron.New(),
	}
	if _, err := s.cron.AddFunc(schedule, func() {
		_, _ = s.RunOnce(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("session sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins the schedule. Calling Start twice is a no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep or ctx, whichever
// finishes first.
func (s *Sweeper) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	done := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one sweep immediately.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.sessions.SweepExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("session sweep failed", zap.Error(err))
		return 0, err
	}
	if s.onSwept != nil {
		s.onSwept(n)
	}
	if n > 0 {
		s.logger.Info("expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}
