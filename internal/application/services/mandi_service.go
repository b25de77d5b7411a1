package services

import (
	"context"
	"fmt"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/logging"
	"mandi-service/internal/infrastructure/metrics"
	"time"

	"golang.org/x/sync/singleflight"
)

const coldStartKey = "cold_start"

// mandiService implements the read-through cache over the government price feed
type mandiService struct {
	fetcher  interfaces.PriceFetcher
	store    interfaces.SnapshotStore
	coalesce bool
	group    singleflight.Group
	logger   logging.BusinessLogger
}

// MandiServiceOption tweaks the service at construction time
type MandiServiceOption func(*mandiService)

// WithColdStartCoalescing makes concurrent cold reads share a single fetch
func WithColdStartCoalescing(enabled bool) MandiServiceOption {
	return func(s *mandiService) {
		s.coalesce = enabled
	}
}

// WithBusinessLogger sets the logger used for refresh events
func WithBusinessLogger(logger logging.BusinessLogger) MandiServiceOption {
	return func(s *mandiService) {
		s.logger = logger
	}
}

// NewMandiService creates the service. Cold-start coalescing is on by default.
func NewMandiService(fetcher interfaces.PriceFetcher, store interfaces.SnapshotStore, opts ...MandiServiceOption) interfaces.MandiService {
	s := &mandiService{
		fetcher:  fetcher,
		store:    store,
		coalesce: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Business()
	}
	return s
}

// Latest sirve desde el store y solo va al upstream si está vacío
func (s *mandiService) Latest(ctx context.Context) (*entities.Snapshot, error) {
	snapshot, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	if !snapshot.IsEmpty() {
		return snapshot, nil
	}

	logging.Info(ctx, "Snapshot store is empty, fetching feed before responding", nil)

	if !s.coalesce {
		return s.RefreshOnce(ctx, interfaces.TriggerColdStart)
	}

	// the shared call keeps running if the first caller goes away
	result, err, shared := s.group.Do(coldStartKey, func() (interface{}, error) {
		return s.RefreshOnce(ctx, interfaces.TriggerColdStart)
	})
	if err != nil {
		return nil, err
	}

	snap := result.(*entities.Snapshot)
	if shared {
		logging.Debug(ctx, "Cold start fetch shared with concurrent readers", logging.Fields{
			logging.FieldRecords: snap.Total(),
		})
		return snap.Clone(), nil
	}
	return snap, nil
}

func (s *mandiService) Refresh(ctx context.Context) (*entities.Snapshot, error) {
	return s.RefreshOnce(ctx, interfaces.TriggerManual)
}

// RefreshOnce fetches every page and replaces the stored snapshot.
// Nothing is written when the fetch fails, so the previous snapshot stays in place.
func (s *mandiService) RefreshOnce(ctx context.Context, trigger interfaces.RefreshTrigger) (*entities.Snapshot, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	s.logger.RefreshStarted(ctx, string(trigger))

	records, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, trigger, start, err)
	}

	snapshot, err := s.store.Write(ctx, records)
	if err != nil {
		return nil, s.fail(ctx, trigger, start, err)
	}

	duration := time.Since(start)
	metrics.RecordRefresh(string(trigger), "", duration.Seconds())
	s.logger.RefreshCompleted(ctx, string(trigger), snapshot.Total(), float64(duration.Nanoseconds())/1e6)

	return snapshot, nil
}

func (s *mandiService) Peek(ctx context.Context) (*entities.Snapshot, error) {
	return s.store.Read(ctx)
}

func (s *mandiService) fail(ctx context.Context, trigger interfaces.RefreshTrigger, start time.Time, err error) error {
	kind := entities.RefreshErrorKind(err)
	metrics.RecordRefresh(string(trigger), kind, time.Since(start).Seconds())
	s.logger.RefreshFailed(ctx, string(trigger), err)
	return fmt.Errorf("%s refresh failed: %w", trigger, err)
}
