// Package notify is the user-facing notification sink. Fetch and mutation
// outcomes are reported here fire-and-forget; rendering (toasts, status
// bars) is whoever consumes the sink.
package notify

import "github.com/rs/zerolog"

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one user-facing message.
type Notification struct {
	Kind    Kind
	Message string
}

// Notifier receives user-facing messages. Implementations must not block;
// callers fire and forget.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(Kind, string) {}

// Log writes notifications to a zerolog logger, errors at error level and
// everything else at info.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(kind Kind, message string) {
	evt := l.log.Info()
	if kind == KindError {
		evt = l.log.Error()
	}
	evt.Str("kind", string(kind)).Msg(message)
}

// Channel forwards notifications to a buffered channel for a UI loop to
// drain. When the buffer is full the notification is dropped rather than
// blocking the cache layer.
type Channel struct {
	ch chan Notification
}

func NewChannel(buffer int) *Channel {
	return &Channel{ch: make(chan Notification, buffer)}
}

// C is the receive side of the sink.
func (c *Channel) C() <-chan Notification { return c.ch }

func (c *Channel) Notify(kind Kind, message string) {
	select {
	case c.ch <- Notification{Kind: kind, Message: message}:
	default:
	}
}
