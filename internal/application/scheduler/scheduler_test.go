package scheduler

import (
	"context"
	"errors"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRefresher replays the configured errors in order, then succeeds
type fakeRefresher struct {
	mu       sync.Mutex
	calls    int
	triggers []interfaces.RefreshTrigger
	errs     []error
	gate     chan struct{}
}

func (f *fakeRefresher) RefreshOnce(ctx context.Context, trigger interfaces.RefreshTrigger) (*entities.Snapshot, error) {
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.triggers = append(f.triggers, trigger)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return entities.NewSnapshot([]entities.PriceRecord{{"market": "Azadpur"}}, time.Now()), nil
}

func (f *fakeRefresher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitCycles(t *testing.T, s *RefreshScheduler, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return s.Cycles() >= n }, time.Second, time.Millisecond)
}

func TestRefreshScheduler_RunsOnStartThenEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	refresher := &fakeRefresher{}
	s := NewRefreshScheduler(refresher, 30*time.Minute, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitCycles(t, s, 1)
	assert.Equal(t, 1, refresher.callCount())

	// the ticker is created once the first cycle is done
	clock.BlockUntil(1)
	clock.Advance(29 * time.Minute)
	assert.Equal(t, 1, refresher.callCount())

	clock.Advance(time.Minute)
	waitCycles(t, s, 2)

	clock.Advance(30 * time.Minute)
	waitCycles(t, s, 3)

	assert.Equal(t, []interfaces.RefreshTrigger{
		interfaces.TriggerScheduler, interfaces.TriggerScheduler, interfaces.TriggerScheduler,
	}, refresher.triggers)
	assert.Equal(t, StateIdle, s.State())
}

func TestRefreshScheduler_WithoutRunOnStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	refresher := &fakeRefresher{}
	s := NewRefreshScheduler(refresher, time.Minute, WithClock(clock), WithRunOnStart(false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	clock.BlockUntil(1)
	assert.Equal(t, 0, refresher.callCount())
	assert.Nil(t, s.LastRun())

	clock.Advance(time.Minute)
	waitCycles(t, s, 1)
	assert.Equal(t, 1, refresher.callCount())
}

func TestRefreshScheduler_FailedCycleIsSwallowed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	upstreamErr := &entities.UpstreamError{Page: 3, Offset: 10000, Err: errors.New("connection reset")}
	refresher := &fakeRefresher{errs: []error{upstreamErr}}
	s := NewRefreshScheduler(refresher, time.Minute, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitCycles(t, s, 1)
	last := s.LastRun()
	require.NotNil(t, last)
	assert.False(t, last.Succeeded())
	assert.ErrorIs(t, last.Err, upstreamErr)
	assert.Equal(t, 0, last.Records)

	// the loop keeps going after a failure
	clock.BlockUntil(1)
	clock.Advance(time.Minute)
	waitCycles(t, s, 2)

	last = s.LastRun()
	assert.True(t, last.Succeeded())
	assert.Equal(t, 1, last.Records)
}

func TestRefreshScheduler_StateWhileRefreshing(t *testing.T) {
	gate := make(chan struct{})
	refresher := &fakeRefresher{gate: gate}
	s := NewRefreshScheduler(refresher, time.Minute, WithClock(clockwork.NewFakeClock()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(t, StateIdle, s.State())

	s.Start(ctx)
	require.Eventually(t, func() bool { return s.State() == StateRefreshing }, time.Second, time.Millisecond)

	close(gate)
	waitCycles(t, s, 1)
	assert.Equal(t, StateIdle, s.State())
}

func TestRefreshScheduler_StopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	refresher := &fakeRefresher{}
	s := NewRefreshScheduler(refresher, time.Minute, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	s.Start(ctx)
	waitCycles(t, s, 1)

	cancel()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	assert.Equal(t, 1, refresher.callCount())
}
