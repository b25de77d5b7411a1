package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store keeps one token bucket per client key. Idle keys are dropped by the janitor.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	rate    rate.Limit
	burst   int
	ttl     time.Duration
	clock   clockwork.Clock
}

func NewStore(r rate.Limit, burst int, ttl time.Duration, clock clockwork.Clock) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		entries: make(map[string]*entry, 1024),
		rate:    r,
		burst:   burst,
		ttl:     ttl,
		clock:   clock,
	}
}

// Allow consumes one token for key and reports whether the request may pass
func (s *Store) Allow(key string) bool {
	now := s.clock.Now()

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = now
	s.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// Tokens returns how many requests key could still make right now
func (s *Store) Tokens(key string) int {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return s.burst
	}
	return int(e.limiter.TokensAt(s.clock.Now()))
}

// Len returns the number of tracked clients
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor removes idle clients every interval until ctx is done
func (s *Store) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := s.clock.NewTicker(every)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				s.cleanup()
			}
		}
	}()
}

func (s *Store) cleanup() int {
	cut := s.clock.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if e.lastSeen.Before(cut) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}
