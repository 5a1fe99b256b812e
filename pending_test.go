package maqraa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maqraa/maqraa.go/pkg/cache"
	"github.com/maqraa/maqraa.go/pkg/models"
)

func newCountdownAt(store *cache.EntityStore, now time.Time) *Countdown {
	c := NewCountdown(store)
	c.now = func() time.Time { return now }
	return c
}

func TestCountdownSyncSeedsFromStore(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := cache.NewEntityStore()
	store.SetPendingUsers([]models.PendingUser{
		{ID: "p1", ExpireAt: now.Add(90 * time.Second)},
		{ID: "p2", ExpireAt: now.Add(-time.Minute)},
		{ID: "p3"}, // no expiry on record
	})

	c := newCountdownAt(store, now)
	c.Sync()

	d, ok := c.Remaining("p1")
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, d)

	_, ok = c.Remaining("p2")
	assert.False(t, ok, "already-lapsed records are not counted down")
	_, ok = c.Remaining("p3")
	assert.False(t, ok)
}

func TestCountdownSyncWithoutLoadIsNoop(t *testing.T) {
	c := NewCountdown(cache.NewEntityStore())
	c.Sync()
	_, ok := c.Remaining("p1")
	assert.False(t, ok)
}

func TestCountdownTickDecrements(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := cache.NewEntityStore()
	store.SetPendingUsers([]models.PendingUser{
		{ID: "p1", ExpireAt: now.Add(3 * time.Second)},
	})

	c := newCountdownAt(store, now)
	c.Sync()
	c.Tick()

	d, ok := c.Remaining("p1")
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, d)

	users, _ := store.PendingUsers()
	assert.Len(t, users, 1, "record stays until its window lapses")
}

func TestCountdownExpiryPrunesStore(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := cache.NewEntityStore()
	store.SetPendingUsers([]models.PendingUser{
		{ID: "p1", ExpireAt: now.Add(time.Second)},
		{ID: "p2", ExpireAt: now.Add(time.Hour)},
	})

	c := newCountdownAt(store, now)
	c.Sync()
	c.Tick()

	_, ok := c.Remaining("p1")
	assert.False(t, ok)

	users, loaded := store.PendingUsers()
	require.True(t, loaded)
	require.Len(t, users, 1)
	assert.Equal(t, models.PendingUserID("p2"), users[0].ID)
}

func TestCountdownSimultaneousExpirySinglePass(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := cache.NewEntityStore()
	store.SetPendingUsers([]models.PendingUser{
		{ID: "p1", ExpireAt: now.Add(time.Second)},
		{ID: "p2", ExpireAt: now.Add(time.Second)},
		{ID: "p3", ExpireAt: now.Add(time.Hour)},
	})

	c := newCountdownAt(store, now)
	c.Sync()
	c.Tick()

	users, loaded := store.PendingUsers()
	require.True(t, loaded)
	require.Len(t, users, 1, "both lapsed records go in one pass")
	assert.Equal(t, models.PendingUserID("p3"), users[0].ID)
}

func TestCountdownResyncReplacesTracking(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := cache.NewEntityStore()
	store.SetPendingUsers([]models.PendingUser{
		{ID: "p1", ExpireAt: now.Add(time.Hour)},
	})

	c := newCountdownAt(store, now)
	c.Sync()

	// A forced refetch replaced the collection; Sync follows it.
	store.SetPendingUsers([]models.PendingUser{
		{ID: "p2", ExpireAt: now.Add(time.Minute)},
	})
	c.Sync()

	_, ok := c.Remaining("p1")
	assert.False(t, ok)
	d, ok := c.Remaining("p2")
	require.True(t, ok)
	assert.Equal(t, time.Minute, d)
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "1h 2m 3s", FormatRemaining(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "0h 0m 45s", FormatRemaining(45*time.Second))
	assert.Equal(t, "", FormatRemaining(0))
	assert.Equal(t, "", FormatRemaining(-time.Second))
}
