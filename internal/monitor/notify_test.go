package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingBus collects published events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []interface{}
}

func (b *recordingBus) Publish(event interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) all() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]interface{}, len(b.events))
	copy(out, b.events)
	return out
}

func TestNotifierShowAndExpire(t *testing.T) {
	st := NewStore(10, zap.NewNop())
	bus := &recordingBus{}
	n := NewNotifier(st, bus, 50*time.Millisecond, zap.NewNop())

	n.Show(MsgTradeExecuted)

	got := st.State().Notification
	require.NotNil(t, got)
	assert.Equal(t, MsgTradeExecuted, got.Message)

	assert.Eventually(t, func() bool {
		return st.State().Notification == nil
	}, time.Second, 10*time.Millisecond, "notification should clear after its ttl")

	events := bus.all()
	require.Len(t, events, 2)
	assert.IsType(t, NotificationShownEvent{}, events[0])
	assert.IsType(t, NotificationClearedEvent{}, events[1])
}

func TestNotifierReplacementResetsExpiry(t *testing.T) {
	st := NewStore(10, zap.NewNop())
	n := NewNotifier(st, nil, 100*time.Millisecond, zap.NewNop())

	n.Show(MsgTradeExecuted)
	time.Sleep(60 * time.Millisecond)
	n.Show(MsgStrategyUpdated)

	// Past the first message's expiry; the replacement must still be up.
	time.Sleep(60 * time.Millisecond)
	got := st.State().Notification
	require.NotNil(t, got, "replacement cleared by the first timer")
	assert.Equal(t, MsgStrategyUpdated, got.Message)

	assert.Eventually(t, func() bool {
		return st.State().Notification == nil
	}, time.Second, 10*time.Millisecond)
}

func TestNotifierClear(t *testing.T) {
	st := NewStore(10, zap.NewNop())
	n := NewNotifier(st, nil, time.Minute, zap.NewNop())

	n.Show(MsgStrategyFailed)
	n.Clear()

	assert.Nil(t, st.State().Notification)

	// The stopped timer must not resurrect anything.
	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, st.State().Notification)
}
