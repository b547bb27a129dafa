// Package cache holds the latest snapshot of mentions and derived views
// and keeps it fresh with single-flight background refreshes.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/monitoring"
)

// Refresher produces a new snapshot. Implemented by the monitoring
// service.
type Refresher interface {
	Refresh(ctx context.Context) (*monitoring.Snapshot, error)
}

// Service is the cache and refresh orchestrator. The snapshot and the
// in-flight marker are the only shared state; the mutex is held for
// state swaps only, never across a collector call.
type Service struct {
	refresher Refresher
	ttl       time.Duration
	bootWait  time.Duration

	mu       sync.Mutex
	snapshot *monitoring.Snapshot
	inflight chan struct{} // non-nil while a refresh runs, closed on completion
}

// New creates a cache around the given refresher. ttl bounds snapshot
// age; bootstrapWait bounds how long the very first reader blocks for
// the initial refresh.
func New(refresher Refresher, ttl, bootstrapWait time.Duration) *Service {
	return &Service{
		refresher: refresher,
		ttl:       ttl,
		bootWait:  bootstrapWait,
	}
}

// Snapshot returns the current snapshot without triggering a refresh.
// It is nil until the first refresh completes.
func (s *Service) Snapshot() *monitoring.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Ensure returns the freshest available snapshot, kicking off a
// background refresh when the cache is stale. A stale read never blocks:
// it serves the last good snapshot while the refresh runs detached. Only
// the very first readers, with no snapshot ever computed, wait - up to
// the bootstrap bound - for the in-flight refresh. The returned snapshot
// may be nil if that bound elapses before the first refresh finishes.
func (s *Service) Ensure(ctx context.Context) *monitoring.Snapshot {
	s.mu.Lock()
	snapshot := s.snapshot
	stale := snapshot == nil || time.Since(snapshot.ScrapedAt) > s.ttl
	s.mu.Unlock()

	if !stale {
		return snapshot
	}

	done := s.trigger()

	if snapshot != nil {
		return snapshot
	}

	// First-request bootstrap. The timeout abandons the wait, not the
	// refresh itself, which keeps running and will populate the cache.
	select {
	case <-done:
	case <-time.After(s.bootWait):
		logrus.Warnf("Initial refresh still running after %v, serving empty response", s.bootWait)
	case <-ctx.Done():
	}

	return s.Snapshot()
}

// ForceRefresh runs a refresh synchronously and returns the snapshot it
// produced. If a refresh is already in flight, the caller joins it
// instead of starting a second one.
func (s *Service) ForceRefresh(ctx context.Context) *monitoring.Snapshot {
	done := s.trigger()

	select {
	case <-done:
	case <-ctx.Done():
	}

	return s.Snapshot()
}

// trigger starts a refresh unless one is already in flight, and returns
// a channel closed when that refresh completes. Concurrent triggers are
// absorbed into the running refresh.
func (s *Service) trigger() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight != nil {
		return s.inflight
	}

	done := make(chan struct{})
	s.inflight = done
	go s.run(done)

	return done
}

// run executes one refresh and swaps the result in atomically. On
// failure the previous snapshot is retained unchanged. Refreshes are not
// cancellable: callers time out on the wait, not on the work.
func (s *Service) run(done chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Refresh panicked: %v", r)
		}
		s.mu.Lock()
		s.inflight = nil
		s.mu.Unlock()
		close(done)
	}()

	snapshot, err := s.refresher.Refresh(context.Background())
	if err != nil {
		logrus.Errorf("Refresh failed, keeping previous snapshot: %v", err)
		return
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
}
