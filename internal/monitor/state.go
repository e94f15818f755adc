package monitor

import (
	"sync"
	"time"

	"github.com/vitalyze/terminal/internal/domain"
	"go.uber.org/zap"
)

// Notification is the single user-facing toast. At most one exists at any
// time; a new one unconditionally replaces the old.
type Notification struct {
	Message string
	Expiry  time.Time
}

// ViewState is one consistent snapshot of everything the presentation
// layer reads: the latest team and tick, the bounded price history and the
// active notification. Team is either fully absent or fully populated; a
// snapshot never exposes a team without the tick applied in the same
// cycle.
type ViewState struct {
	Team           *domain.Team
	LatestTick     *domain.MarketTick
	History        *PriceBuffer
	LastTradeCount int
	Notification   *Notification
}

// Clone returns an independent deep-enough copy: the history buffer is
// duplicated, team and tick are server snapshots that are never mutated
// after receipt.
func (s ViewState) Clone() ViewState {
	c := s
	if s.History != nil {
		c.History = s.History.Clone()
	}
	return c
}

// Store owns the session-scoped view state. All mutation goes through
// Apply-style calls serialized by its mutex; readers always get copies.
// Every Reset bumps a generation counter so that a poll cycle which was
// already in flight when the session ended can never write its result into
// a state that has since been torn down.
type Store struct {
	mu         sync.RWMutex
	state      ViewState
	generation uint64
	logger     *zap.Logger
}

// NewStore creates an empty store with the given history capacity.
func NewStore(historySize int, logger *zap.Logger) *Store {
	return &Store{
		state:  ViewState{History: NewPriceBuffer(historySize)},
		logger: logger,
	}
}

// Snapshot returns a copy of the current state together with the
// generation it belongs to.
func (st *Store) Snapshot() (ViewState, uint64) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.Clone(), st.generation
}

// State returns a copy of the current state.
func (st *Store) State() ViewState {
	s, _ := st.Snapshot()
	return s
}

// Apply installs a reconciled snapshot, provided the store is still on the
// generation the snapshot was derived from. A stale apply is dropped and
// reported false.
func (st *Store) Apply(generation uint64, next ViewState) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if generation != st.generation {
		st.logger.Debug("dropping stale snapshot",
			zap.Uint64("snapshot_generation", generation),
			zap.Uint64("current_generation", st.generation))
		return false
	}

	// Keep the notification; it is owned by the dispatcher, not the
	// poll cycle.
	next.Notification = st.state.Notification
	st.state = next
	return true
}

// Seed installs a freshly fetched team before polling starts. Restoring a
// saved session counts as the first successful team fetch, so the trade
// baseline comes from it; otherwise the first poll cycle would compare the
// server's count against zero and report trades from before this run.
func (st *Store) Seed(team *domain.Team) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state.Team = team
	st.state.LastTradeCount = team.TradesCount
}

// SetNotification replaces the active notification.
func (st *Store) SetNotification(n *Notification) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state.Notification = n
}

// ClearNotification removes the active notification.
func (st *Store) ClearNotification() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state.Notification = nil
}

// Reset tears the state down to empty and invalidates any in-flight
// cycle. Called when the session ends or the team id turns out to be
// stale.
func (st *Store) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()

	capacity := 1
	if st.state.History != nil {
		capacity = st.state.History.Capacity()
	}
	st.state = ViewState{History: NewPriceBuffer(capacity)}
	st.generation++
}
