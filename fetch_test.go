package maqraa

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is the minimal commit target for fetchGroup tests.
type fakeStore struct {
	mu     sync.Mutex
	value  int
	loaded bool
}

func (s *fakeStore) cached() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.loaded
}

func (s *fakeStore) commit(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.loaded = true
}

func TestFetchGroupCacheHitSkipsLoad(t *testing.T) {
	g := &fetchGroup[int]{}
	store := &fakeStore{value: 7, loaded: true}
	var loads atomic.Int32

	v, err := g.do(context.Background(), "k", false, store.cached,
		func(context.Context) (int, error) {
			loads.Add(1)
			return 99, nil
		},
		store.commit,
	)

	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Zero(t, loads.Load())
}

func TestFetchGroupForceBypassesCache(t *testing.T) {
	g := &fetchGroup[int]{}
	store := &fakeStore{value: 7, loaded: true}

	v, err := g.do(context.Background(), "k", true, store.cached,
		func(context.Context) (int, error) { return 99, nil },
		store.commit,
	)

	require.NoError(t, err)
	assert.Equal(t, 99, v)
	cur, _ := store.cached()
	assert.Equal(t, 99, cur)
}

func TestFetchGroupSingleFlight(t *testing.T) {
	g := &fetchGroup[int]{}
	store := &fakeStore{}
	var loads atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) (int, error) {
		loads.Add(1)
		<-release
		return 42, nil
	}

	const callers = 8
	results := make(chan int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := g.do(context.Background(), "k", false, store.cached, load, store.commit)
			assert.NoError(t, err)
			results <- v
		}()
	}

	// Wait for the shared call to be issued, then release it.
	require.Eventually(t, func() bool { return g.inflight("k") }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load(), "concurrent callers must share one load")
	for i := 0; i < callers; i++ {
		assert.Equal(t, 42, <-results)
	}
	cur, ok := store.cached()
	assert.True(t, ok)
	assert.Equal(t, 42, cur)
}

func TestFetchGroupKeysAreIndependent(t *testing.T) {
	g := &fetchGroup[int]{}
	store := &fakeStore{}
	var loads atomic.Int32
	load := func(context.Context) (int, error) {
		loads.Add(1)
		return 1, nil
	}

	_, err := g.do(context.Background(), "a", false, func() (int, bool) { return 0, false }, load, store.commit)
	require.NoError(t, err)
	_, err = g.do(context.Background(), "b", false, func() (int, bool) { return 0, false }, load, store.commit)
	require.NoError(t, err)

	assert.Equal(t, int32(2), loads.Load())
}

func TestFetchGroupStaleResponseNeverCommits(t *testing.T) {
	g := &fetchGroup[int]{}
	store := &fakeStore{}
	release := make(chan struct{})

	// First call hangs in flight.
	firstDone := make(chan int, 1)
	go func() {
		v, _ := g.do(context.Background(), "k", false, store.cached,
			func(context.Context) (int, error) {
				<-release
				return 1, nil
			},
			store.commit,
		)
		firstDone <- v
	}()
	require.Eventually(t, func() bool { return g.inflight("k") }, time.Second, time.Millisecond)

	// A forced refetch supersedes it and commits.
	v, err := g.do(context.Background(), "k", true, store.cached,
		func(context.Context) (int, error) { return 2, nil },
		store.commit,
	)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// The superseded response reaches its own caller but not the store.
	close(release)
	assert.Equal(t, 1, <-firstDone)
	cur, ok := store.cached()
	assert.True(t, ok)
	assert.Equal(t, 2, cur, "stale response must not overwrite the newer commit")
}

func TestFetchGroupFailureLeavesCacheUntouched(t *testing.T) {
	g := &fetchGroup[int]{}
	store := &fakeStore{value: 7, loaded: true}
	boom := errors.New("boom")

	_, err := g.do(context.Background(), "k", true, store.cached,
		func(context.Context) (int, error) { return 0, boom },
		store.commit,
	)

	assert.ErrorIs(t, err, boom)
	cur, ok := store.cached()
	assert.True(t, ok)
	assert.Equal(t, 7, cur)
}

func TestFetchGroupInflightClearsAfterCompletion(t *testing.T) {
	g := &fetchGroup[int]{}
	store := &fakeStore{}

	_, err := g.do(context.Background(), "k", false, store.cached,
		func(context.Context) (int, error) { return 1, nil },
		store.commit,
	)
	require.NoError(t, err)
	assert.False(t, g.inflight("k"))
}
