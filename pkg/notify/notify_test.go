package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelDelivers(t *testing.T) {
	c := NewChannel(2)
	c.Notify(KindSuccess, "saved")
	c.Notify(KindError, "failed")

	n := <-c.C()
	assert.Equal(t, KindSuccess, n.Kind)
	assert.Equal(t, "saved", n.Message)

	n = <-c.C()
	assert.Equal(t, KindError, n.Kind)
}

func TestChannelDropsWhenFull(t *testing.T) {
	c := NewChannel(1)
	c.Notify(KindSuccess, "first")
	// Must not block even though nobody is draining.
	c.Notify(KindSuccess, "second")

	n := <-c.C()
	require.Equal(t, "first", n.Message)

	select {
	case n := <-c.C():
		t.Fatalf("expected dropped notification, got %q", n.Message)
	default:
	}
}

func TestNopDiscards(t *testing.T) {
	// Compile-time interface checks plus a call that must not panic.
	var _ Notifier = Nop{}
	var _ Notifier = NewChannel(1)
	Nop{}.Notify(KindError, "ignored")
}
