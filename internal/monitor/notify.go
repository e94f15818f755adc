package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// User-facing notification texts.
const (
	MsgTradeExecuted   = "TRADE EXECUTED"
	MsgStrategyUpdated = "STRATEGY UPDATED SUCCESSFULLY"
	MsgStrategyFailed  = "ERROR UPDATING STRATEGY"
)

// Notifier holds at most one active, auto-expiring notification in the
// store. Showing a new one replaces the current message and re-arms the
// single expiry timer; there is no stacking and no queue.
type Notifier struct {
	mu     sync.Mutex
	store  *Store
	bus    EventBus
	ttl    time.Duration
	timer  *time.Timer
	seq    uint64
	logger *zap.Logger
}

// NotificationShownEvent is published when a notification appears or is
// replaced.
type NotificationShownEvent struct {
	Message string
	Expiry  time.Time
}

// NotificationClearedEvent is published when the active notification
// expires or is dismissed.
type NotificationClearedEvent struct{}

// NewNotifier creates a dispatcher writing into the given store.
func NewNotifier(store *Store, bus EventBus, ttl time.Duration, logger *zap.Logger) *Notifier {
	return &Notifier{
		store:  store,
		bus:    bus,
		ttl:    ttl,
		logger: logger,
	}
}

// Show replaces any current notification and schedules automatic clearing
// after the configured duration. The previous expiry timer is cancelled,
// so the replacement clears at its own expiry, not the first one's.
func (n *Notifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq

	expiry := time.Now().Add(n.ttl)
	n.store.SetNotification(&Notification{Message: message, Expiry: expiry})
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(seq) })

	n.logger.Debug("notification shown",
		zap.String("message", message),
		zap.Time("expiry", expiry))

	if n.bus != nil {
		n.bus.Publish(NotificationShownEvent{Message: message, Expiry: expiry})
	}
}

// Clear removes the active notification immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	n.clearLocked()
}

// expire clears the notification, unless a newer Show has superseded the
// timer that fired.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if seq != n.seq {
		return
	}
	n.clearLocked()
}

func (n *Notifier) clearLocked() {
	n.store.ClearNotification()
	if n.bus != nil {
		n.bus.Publish(NotificationClearedEvent{})
	}
}
