package maqraa

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/maqraa/maqraa.go/pkg/cache"
	"github.com/maqraa/maqraa.go/pkg/models"
)

// Countdown tracks how long each pending signup's checkout window has left
// and prunes records from the cached pending collection when they hit zero.
// This is presentation-side bookkeeping only: the server still owns expiry
// and may keep listing a lapsed record until it purges it; the next forced
// fetch takes whatever the server says.
type Countdown struct {
	store *cache.EntityStore

	mu        sync.Mutex
	remaining map[models.PendingUserID]time.Duration

	now func() time.Time
}

// NewCountdown creates a tracker over the session's entity store.
func NewCountdown(store *cache.EntityStore) *Countdown {
	return &Countdown{
		store:     store,
		remaining: make(map[models.PendingUserID]time.Duration),
		now:       time.Now,
	}
}

// Sync re-seeds the per-record counters from the cached pending collection,
// replacing whatever was tracked before. Call it after every pending fetch.
func (c *Countdown) Sync() {
	users, ok := c.store.PendingUsers()
	if !ok {
		return
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = make(map[models.PendingUserID]time.Duration, len(users))
	for _, u := range users {
		if u.ExpireAt.IsZero() {
			continue
		}
		c.remaining[u.ID] = u.ExpireAt.Sub(now)
	}
}

// Remaining returns the tracked time left for id. Zero/false means the
// record is not tracked or has lapsed.
func (c *Countdown) Remaining(id models.PendingUserID) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.remaining[id]
	if !ok || d <= 0 {
		return 0, false
	}
	return d, true
}

// Tick advances every counter by one second. Records reaching zero are
// dropped from the tracker and filtered out of the cached pending
// collection in a single pass, so several records lapsing on the same tick
// cannot leave a partial update behind.
func (c *Countdown) Tick() {
	c.mu.Lock()
	expired := make(map[models.PendingUserID]bool)
	for id, d := range c.remaining {
		d -= time.Second
		if d > 0 {
			c.remaining[id] = d
			continue
		}
		delete(c.remaining, id)
		expired[id] = true
	}
	c.mu.Unlock()

	if len(expired) == 0 {
		return
	}
	c.store.FilterPendingUsers(func(u models.PendingUser) bool {
		return !expired[u.ID]
	})
}

// Run ticks once per second until ctx is done.
func (c *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// FormatRemaining renders a duration the way the dashboard shows it,
// hours/minutes/seconds. Empty string for lapsed windows.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
}
