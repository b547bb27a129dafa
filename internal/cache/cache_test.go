package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapscholar/leappulse/internal/models"
	"github.com/leapscholar/leappulse/internal/monitoring"
)

// fakeRefresher counts refresh starts and can hold refreshes open until
// released.
type fakeRefresher struct {
	starts  int32
	block   chan struct{}
	err     error
	payload func() *monitoring.Snapshot
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{
		payload: func() *monitoring.Snapshot {
			return &monitoring.Snapshot{
				Mentions:  []models.Mention{{ID: "m1", Platform: "Reddit"}},
				ScrapedAt: time.Now().UTC(),
			}
		},
	}
}

func (f *fakeRefresher) Refresh(ctx context.Context) (*monitoring.Snapshot, error) {
	atomic.AddInt32(&f.starts, 1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.payload(), nil
}

func (f *fakeRefresher) startCount() int {
	return int(atomic.LoadInt32(&f.starts))
}

func TestFirstReaderWaitsForBootstrap(t *testing.T) {
	refresher := newFakeRefresher()
	service := New(refresher, time.Minute, 5*time.Second)

	snapshot := service.Ensure(context.Background())

	require.NotNil(t, snapshot)
	assert.Len(t, snapshot.Mentions, 1)
	assert.Equal(t, 1, refresher.startCount())
}

func TestBootstrapWaitIsBounded(t *testing.T) {
	refresher := newFakeRefresher()
	refresher.block = make(chan struct{})
	service := New(refresher, time.Minute, 50*time.Millisecond)

	start := time.Now()
	snapshot := service.Ensure(context.Background())

	assert.Nil(t, snapshot, "bound elapsed before the first refresh finished")
	assert.Less(t, time.Since(start), 2*time.Second)

	// The refresh keeps running past the abandoned wait and eventually
	// populates the cache.
	close(refresher.block)
	assert.Eventually(t, func() bool {
		return service.Snapshot() != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFreshSnapshotServedWithoutRefresh(t *testing.T) {
	refresher := newFakeRefresher()
	service := New(refresher, time.Minute, time.Second)

	service.ForceRefresh(context.Background())
	require.Equal(t, 1, refresher.startCount())

	for i := 0; i < 5; i++ {
		snapshot := service.Ensure(context.Background())
		require.NotNil(t, snapshot)
	}

	assert.Equal(t, 1, refresher.startCount(), "fresh reads must not trigger refreshes")
}

func TestStaleReadServesOldSnapshotImmediately(t *testing.T) {
	refresher := newFakeRefresher()
	service := New(refresher, 10*time.Millisecond, time.Second)

	first := service.ForceRefresh(context.Background())
	require.NotNil(t, first)
	time.Sleep(20 * time.Millisecond)

	refresher.block = make(chan struct{})
	defer close(refresher.block)

	start := time.Now()
	snapshot := service.Ensure(context.Background())

	require.NotNil(t, snapshot, "stale read must serve the previous snapshot")
	assert.Equal(t, first.ScrapedAt, snapshot.ScrapedAt)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "stale reads never block")
}

func TestSingleFlightUnderConcurrentStaleReaders(t *testing.T) {
	refresher := newFakeRefresher()
	service := New(refresher, 10*time.Millisecond, time.Second)

	service.ForceRefresh(context.Background())
	require.Equal(t, 1, refresher.startCount())
	time.Sleep(20 * time.Millisecond)

	refresher.block = make(chan struct{})

	const readers = 50
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.Ensure(context.Background())
		}()
	}
	wg.Wait()

	close(refresher.block)
	assert.Eventually(t, func() bool {
		snapshot := service.Snapshot()
		return snapshot != nil && time.Since(snapshot.ScrapedAt) < 10*time.Millisecond*5
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, 2, refresher.startCount(),
		"N concurrent stale readers must trigger exactly one refresh")
}

func TestForceRefreshJoinsInflightRefresh(t *testing.T) {
	refresher := newFakeRefresher()
	refresher.block = make(chan struct{})
	service := New(refresher, time.Minute, time.Second)

	go service.ForceRefresh(context.Background())
	assert.Eventually(t, func() bool {
		return refresher.startCount() == 1
	}, time.Second, 5*time.Millisecond)

	resultCh := make(chan *monitoring.Snapshot, 1)
	go func() {
		resultCh <- service.ForceRefresh(context.Background())
	}()

	// The second caller must be parked on the running refresh before it is
	// released; releasing too early would let it start a refresh of its own.
	time.Sleep(100 * time.Millisecond)
	require.Empty(t, resultCh, "joining caller returned before the refresh completed")
	require.Equal(t, 1, refresher.startCount())

	close(refresher.block)

	select {
	case snapshot := <-resultCh:
		require.NotNil(t, snapshot)
	case <-time.After(2 * time.Second):
		t.Fatal("joined ForceRefresh did not return after the refresh completed")
	}

	assert.Equal(t, 1, refresher.startCount())
}

func TestFailedRefreshRetainsPreviousSnapshot(t *testing.T) {
	refresher := newFakeRefresher()
	service := New(refresher, time.Minute, time.Second)

	first := service.ForceRefresh(context.Background())
	require.NotNil(t, first)

	refresher.err = assert.AnError
	second := service.ForceRefresh(context.Background())

	require.NotNil(t, second)
	assert.Equal(t, first.ScrapedAt, second.ScrapedAt, "failure keeps the previous snapshot")

	// The in-flight flag is cleared: the next refresh runs again.
	refresher.err = nil
	third := service.ForceRefresh(context.Background())
	require.NotNil(t, third)
	assert.True(t, third.ScrapedAt.After(first.ScrapedAt))
}

func TestMonotonicVisibility(t *testing.T) {
	refresher := newFakeRefresher()
	service := New(refresher, time.Minute, time.Second)

	first := service.ForceRefresh(context.Background())
	second := service.ForceRefresh(context.Background())

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.False(t, second.ScrapedAt.Before(first.ScrapedAt))
	assert.Equal(t, second.ScrapedAt, service.Snapshot().ScrapedAt)
}
