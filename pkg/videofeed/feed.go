// Package videofeed listens to the external video host's event feed over a
// websocket. The upload and OAuth machinery on the host's side is a black
// box; all the dashboard needs is the final "record created" or "record
// deleted" event so it can force-refetch the owning classroom's videos tab.
package videofeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/maqraa/maqraa.go/pkg/models"
)

// Event types emitted by the video host.
const (
	EventVideoCreated = "video.created"
	EventVideoDeleted = "video.deleted"
)

// Event is one message on the feed.
type Event struct {
	Type    string             `json:"type"`
	ClassID models.ClassroomID `json:"classId"`
	VideoID string             `json:"videoId,omitempty"`
}

// Handler receives each decoded event. It runs on the read loop goroutine;
// long work belongs elsewhere.
type Handler func(Event)

// Feed is a single subscription to the host's event socket.
type Feed struct {
	url     string
	handler Handler
	log     zerolog.Logger
	dialer  *websocket.Dialer
}

// New creates a feed for the socket at url, delivering events to handler.
func New(url string, handler Handler) *Feed {
	dialer := *websocket.DefaultDialer
	dialer.EnableCompression = true
	dialer.HandshakeTimeout = 10 * time.Second
	return &Feed{
		url:     url,
		handler: handler,
		log:     zerolog.Nop(),
		dialer:  &dialer,
	}
}

// SetLogger attaches a logger.
func (f *Feed) SetLogger(log zerolog.Logger) { f.log = log }

// Listen dials the feed and delivers events until ctx is done or the
// connection fails. Messages that do not decode as events are skipped; the
// host multiplexes other traffic on the same socket.
func (f *Feed) Listen(ctx context.Context) error {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("videofeed: dial %s: %w", f.url, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteMessage(websocket.CloseMessage, msg)
		_ = conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("videofeed: read: %w", err)
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil || ev.Type == "" {
			f.log.Debug().Err(err).Msg("videofeed: skipping undecodable message")
			continue
		}
		if ev.Type != EventVideoCreated && ev.Type != EventVideoDeleted {
			continue
		}
		if ev.ClassID.IsZero() {
			f.log.Warn().Str("type", ev.Type).Msg("videofeed: event without classroom id")
			continue
		}
		f.log.Debug().Str("type", ev.Type).Str("class", ev.ClassID.String()).Msg("videofeed: event")
		f.handler(ev)
	}
}
