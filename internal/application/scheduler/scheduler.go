// Package scheduler keeps the snapshot store warm by refreshing it on a fixed interval.
package scheduler

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/logging"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// State of the refresh loop
type State string

const (
	StateIdle       State = "idle"
	StateRefreshing State = "refreshing"
)

// Refresher is the fetch+write operation the loop drives
type Refresher interface {
	RefreshOnce(ctx context.Context, trigger interfaces.RefreshTrigger) (*entities.Snapshot, error)
}

// RunInfo describes the last finished cycle
type RunInfo struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Records    int
	Err        error
}

// Succeeded reports whether the cycle wrote a new snapshot
func (r RunInfo) Succeeded() bool {
	return r.Err == nil
}

// RefreshScheduler runs one refresh cycle at a time. A failed cycle is logged and
// dropped, the previous snapshot stays in place until the next tick.
type RefreshScheduler struct {
	refresher  Refresher
	interval   time.Duration
	runOnStart bool
	clock      clockwork.Clock

	mu      sync.RWMutex
	state   State
	lastRun *RunInfo
	cycles  int

	startOnce sync.Once
	done      chan struct{}
}

type Option func(*RefreshScheduler)

// WithClock replaces the real clock, tests use a fake one
func WithClock(clock clockwork.Clock) Option {
	return func(s *RefreshScheduler) {
		s.clock = clock
	}
}

// WithRunOnStart controls the immediate cycle when the loop starts
func WithRunOnStart(enabled bool) Option {
	return func(s *RefreshScheduler) {
		s.runOnStart = enabled
	}
}

func NewRefreshScheduler(refresher Refresher, interval time.Duration, opts ...Option) *RefreshScheduler {
	s := &RefreshScheduler{
		refresher:  refresher,
		interval:   interval,
		runOnStart: true,
		clock:      clockwork.NewRealClock(),
		state:      StateIdle,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the loop in its own goroutine. It stops when ctx is cancelled.
// Calling Start more than once has no effect.
func (s *RefreshScheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.run(ctx)
	})
}

// Done is closed once the loop has exited
func (s *RefreshScheduler) Done() <-chan struct{} {
	return s.done
}

func (s *RefreshScheduler) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastRun returns a copy of the last finished cycle, or nil before the first one ends
func (s *RefreshScheduler) LastRun() *RunInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return nil
	}
	run := *s.lastRun
	return &run
}

// Cycles counts finished cycles, failed ones included
func (s *RefreshScheduler) Cycles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycles
}

func (s *RefreshScheduler) Interval() time.Duration {
	return s.interval
}

func (s *RefreshScheduler) run(ctx context.Context) {
	defer close(s.done)

	logging.Info(ctx, "Starting background mandi refresh routine", logging.Fields{
		"interval":     s.interval.String(),
		"run_on_start": s.runOnStart,
	})

	if s.runOnStart {
		s.cycle(ctx)
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info(ctx, "Background mandi refresh routine stopped", nil)
			return
		case <-ticker.Chan():
			s.cycle(ctx)
		}
	}
}

func (s *RefreshScheduler) cycle(ctx context.Context) {
	s.setState(StateRefreshing)
	started := s.clock.Now()

	snap, err := s.refresher.RefreshOnce(ctx, interfaces.TriggerScheduler)

	run := RunInfo{
		StartedAt:  started,
		FinishedAt: s.clock.Now(),
		Records:    snap.Total(),
		Err:        err,
	}

	if err != nil {
		logging.WarnWithError(ctx, "Background mandi refresh failed, keeping previous snapshot", err, logging.Fields{
			logging.FieldErrorKind: entities.RefreshErrorKind(err),
		})
	}

	s.mu.Lock()
	s.state = StateIdle
	s.lastRun = &run
	s.cycles++
	s.mu.Unlock()
}

func (s *RefreshScheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
