// Package maqraa is the Go client SDK for the Maqraa classroom-management
// admin API, built around a session-scoped cache.
//
// # Session and cache
//
// [NewSession] wraps an [github.com/maqraa/maqraa.go/pkg/api.Client] with an
// entity store and a per-classroom registry. Reads follow one policy
// everywhere: a loaded cache entry is served without a network call unless
// the caller forces a refetch, concurrent fetches for the same key share a
// single network call, and a failed fetch leaves the previously cached value
// in place. Writes go through the API and then force-refetch the owning
// collection, so derived fields computed by the server never drift in the
// cache.
//
//	src := token.NewFile(".maqraa-token")
//	client := api.NewClient("https://api.example.com", src)
//	session := maqraa.NewSession(client)
//
//	classes, err := session.Classrooms(ctx, false) // cached after first call
//	_ = session.CreateClassroom(ctx, api.NewClassroom{Name: "Tajweed 101"})
//
// # Classroom tabs
//
// Each visited classroom gets a registry slot with seven independently
// cached tabs (home, students, files, tasks, receivedTasks, notes, videos).
// Opening a classroom twice never resets data a tab already loaded; that
// invariant is what keeps revisiting a tab instant.
//
// # Pending signups
//
// [Countdown] mirrors the dashboard's checkout-expiry timers: a one-second
// tick counts each pending signup down and prunes lapsed records from the
// cached collection locally. The server stays authoritative.
//
// # Video uploads
//
// Uploads happen directly against the external video host and never pass
// through this SDK. [github.com/maqraa/maqraa.go/pkg/videofeed] listens to
// the host's event feed and calls [Session.SyncClassVideos] when a record
// was created or deleted, which force-refetches the owning videos tab.
package maqraa
