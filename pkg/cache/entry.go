// Package cache holds the session-scoped data cache behind the admin
// dashboard: one EntityStore for top-level entities and one
// ClassroomRegistry of per-classroom tab slots.
//
// Every cached value is tri-state via Entry: never fetched, or fetched with
// a value (possibly an empty collection). The distinction is load-bearing:
// the fetch layer skips the network only for entries that were actually
// loaded, so an empty classroom does not get refetched on every visit.
//
// Writes replace the whole value; nothing in this package merges. Staleness
// is the caller's problem: there is no TTL, an entry stays valid until a
// forced fetch replaces it or the session is reset.
package cache

// Entry is a cached value that knows whether it has ever been loaded.
// The zero value is the not-loaded state.
type Entry[T any] struct {
	loaded bool
	value  T
}

// LoadedEntry returns an Entry holding v.
func LoadedEntry[T any](v T) Entry[T] {
	return Entry[T]{loaded: true, value: v}
}

// Loaded reports whether the entry has been written at least once.
func (e Entry[T]) Loaded() bool { return e.loaded }

// Get returns the cached value and whether it was ever loaded. Callers must
// treat returned slices as read-only; replacement is the only write path.
func (e Entry[T]) Get() (T, bool) {
	return e.value, e.loaded
}

// Set replaces the value wholesale and marks the entry loaded.
func (e *Entry[T]) Set(v T) {
	e.value = v
	e.loaded = true
}

// Reset returns the entry to the not-loaded state.
func (e *Entry[T]) Reset() {
	var zero T
	e.value = zero
	e.loaded = false
}
