package maqraa

import (
	"context"
	"sync"
)

// fetchGroup coordinates the fetch policy for one family of cached values.
// It adds two guarantees the store itself does not give:
//
//   - single-flight: concurrent non-forced fetches for the same key share
//     one network call instead of each issuing their own;
//   - sequence guard: every issued call is tagged with a per-key sequence,
//     and only the call holding the latest sequence may commit its payload.
//     A forced refetch supersedes whatever is in flight; if the superseded
//     response arrives later it is returned to its own waiters but never
//     written to the store.
type fetchGroup[T any] struct {
	mu    sync.Mutex
	seq   map[string]uint64
	calls map[string]*fetchCall[T]
}

type fetchCall[T any] struct {
	seq  uint64
	done chan struct{}
	val  T
	err  error
}

// do runs one fetch for key. cached is consulted first unless force is set;
// a loaded entry short-circuits without touching the network. load issues
// the network read. commit writes the payload into the store and runs only
// on success with the latest sequence, so a failed or stale fetch leaves
// the cached value exactly as it was.
func (g *fetchGroup[T]) do(
	ctx context.Context,
	key string,
	force bool,
	cached func() (T, bool),
	load func(context.Context) (T, error),
	commit func(T),
) (T, error) {
	if !force {
		if v, ok := cached(); ok {
			return v, nil
		}
	}

	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*fetchCall[T])
		g.seq = make(map[string]uint64)
	}
	if call, ok := g.calls[key]; ok && !force {
		g.mu.Unlock()
		<-call.done
		return call.val, call.err
	}
	g.seq[key]++
	call := &fetchCall[T]{seq: g.seq[key], done: make(chan struct{})}
	g.calls[key] = call
	g.mu.Unlock()

	v, err := load(ctx)

	g.mu.Lock()
	if g.calls[key] == call {
		delete(g.calls, key)
	}
	latest := g.seq[key] == call.seq
	if err == nil && latest {
		commit(v)
	}
	g.mu.Unlock()

	call.val, call.err = v, err
	close(call.done)
	return v, err
}

// inflight reports whether a call for key has been issued and not completed.
// This is the loading flag the view layer polls.
func (g *fetchGroup[T]) inflight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.calls[key]
	return ok
}
