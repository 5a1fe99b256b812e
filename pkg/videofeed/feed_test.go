package videofeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedServer upgrades the connection and sends each message, then holds the
// socket open until the client goes away.
func feedServer(t *testing.T, messages []string) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, msg := range messages {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestListenDeliversVideoEvents(t *testing.T) {
	url := feedServer(t, []string{
		`{"type":"video.created","classId":"c1","videoId":"v1"}`,
		`not json at all`,
		`{"type":"chat.message","classId":"c1"}`,
		`{"type":"video.deleted","classId":"c2","videoId":"v2"}`,
		`{"type":"video.created","videoId":"orphan"}`,
	})

	events := make(chan Event, 8)
	feed := New(url, func(ev Event) { events <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- feed.Listen(ctx) }()

	ev := <-events
	assert.Equal(t, EventVideoCreated, ev.Type)
	assert.Equal(t, "v1", ev.VideoID)

	ev = <-events
	assert.Equal(t, EventVideoDeleted, ev.Type)
	assert.Equal(t, "c2", ev.ClassID.String())

	// Undecodable, foreign-typed, and classroom-less messages are skipped.
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}

func TestListenDialFailure(t *testing.T) {
	feed := New("ws://127.0.0.1:1/feed", func(Event) {})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := feed.Listen(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial")
}
