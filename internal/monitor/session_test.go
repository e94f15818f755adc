package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitalyze/terminal/internal/api"
	"github.com/vitalyze/terminal/internal/domain"
)

// fakeFetcher serves canned tick/team responses. When entered/release are
// set, GetTick blocks until release closes, simulating a slow server.
type fakeFetcher struct {
	mu        sync.Mutex
	tick      domain.MarketTick
	team      domain.Team
	tickErr   error
	teamErr   error
	tickCalls int

	entered   chan struct{}
	enterOnce sync.Once
	release   chan struct{}
}

func (f *fakeFetcher) GetTick(ctx context.Context) (*domain.MarketTick, error) {
	f.mu.Lock()
	f.tickCalls++
	tick := f.tick
	err := f.tickErr
	f.mu.Unlock()

	if f.entered != nil {
		f.enterOnce.Do(func() { close(f.entered) })
		<-f.release
	}
	if err != nil {
		return nil, err
	}
	return &tick, nil
}

func (f *fakeFetcher) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.teamErr != nil {
		return nil, f.teamErr
	}
	team := f.team
	return &team, nil
}

func (f *fakeFetcher) set(tick domain.MarketTick, team domain.Team) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tick = tick
	f.team = team
}

func newTestSession(t *testing.T, fetcher *fakeFetcher, bus EventBus) (*Session, *Store, *Notifier) {
	t.Helper()

	store := NewStore(50, zap.NewNop())
	notifier := NewNotifier(store, nil, time.Minute, zap.NewNop())

	s, err := NewSession(context.Background(), &SessionConfig{
		TeamID:   "team-1",
		Client:   fetcher,
		Store:    store,
		Notifier: notifier,
		Bus:      bus,
		Logger:   zap.NewNop(),
		Interval: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	return s, store, notifier
}

func TestNewSessionValidation(t *testing.T) {
	_, err := NewSession(context.Background(), &SessionConfig{
		Client: &fakeFetcher{},
		Store:  NewStore(50, zap.NewNop()),
		Logger: zap.NewNop(),
	})
	assert.Error(t, err, "empty team id must be rejected")
}

func TestSessionCycleAppliesSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.set(
		domain.MarketTick{Tick: 1, Price: 450},
		domain.Team{ID: "team-1", Balance: domain.InitialBalance},
	)
	bus := &recordingBus{}
	s, store, _ := newTestSession(t, fetcher, bus)

	s.tick()

	state := store.State()
	require.NotNil(t, state.LatestTick)
	assert.Equal(t, int64(1), state.LatestTick.Tick)
	assert.Equal(t, "team-1", state.Team.ID)
	assert.Equal(t, 1, state.History.Len())

	events := bus.all()
	require.Len(t, events, 1)
	applied, ok := events[0].(SnapshotAppliedEvent)
	require.True(t, ok)
	assert.Empty(t, applied.Transitions)
}

func TestSessionTradeTransitionRaisesNotification(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.set(
		domain.MarketTick{Tick: 1, Price: 450},
		domain.Team{ID: "team-1", TradesCount: 3},
	)
	bus := &recordingBus{}
	s, store, _ := newTestSession(t, fetcher, bus)
	store.Seed(&domain.Team{ID: "team-1", TradesCount: 3})

	s.tick()

	// The count matches the seeded baseline, so nothing fires.
	require.Nil(t, store.State().Notification)

	fetcher.set(
		domain.MarketTick{Tick: 2, Price: 451},
		domain.Team{ID: "team-1", TradesCount: 5},
	)
	s.tick()

	got := store.State().Notification
	require.NotNil(t, got)
	assert.Equal(t, MsgTradeExecuted, got.Message)
	assert.Equal(t, 5, store.State().LastTradeCount)
}

func TestSessionRestoredBaselineSuppressesOldTrades(t *testing.T) {
	restored := &domain.Team{ID: "team-1", TradesCount: 7}
	fetcher := &fakeFetcher{}
	fetcher.set(domain.MarketTick{Tick: 1, Price: 450}, *restored)
	bus := &recordingBus{}
	s, store, _ := newTestSession(t, fetcher, bus)

	// Restoring a saved session seeds the baseline from the restore
	// fetch before polling starts.
	store.Seed(restored)
	s.tick()

	assert.Nil(t, store.State().Notification,
		"trades executed before this run must not raise a toast")
	assert.Equal(t, 7, store.State().LastTradeCount)

	fetcher.set(domain.MarketTick{Tick: 2, Price: 451}, domain.Team{ID: "team-1", TradesCount: 8})
	s.tick()

	got := store.State().Notification
	require.NotNil(t, got)
	assert.Equal(t, MsgTradeExecuted, got.Message)
}

func TestSessionTransientErrorDiscardsCycle(t *testing.T) {
	fetcher := &fakeFetcher{tickErr: errors.New("connection refused")}
	bus := &recordingBus{}
	s, store, _ := newTestSession(t, fetcher, bus)

	s.tick()

	assert.Nil(t, store.State().LatestTick)
	assert.Empty(t, bus.all(), "a discarded cycle publishes nothing")

	select {
	case <-s.Done():
		t.Fatal("transient error must not end the session")
	default:
	}
}

func TestSessionInvalidatedOnUnknownTeam(t *testing.T) {
	fetcher := &fakeFetcher{teamErr: api.ErrTeamNotFound}
	fetcher.set(domain.MarketTick{Tick: 1, Price: 450}, domain.Team{})
	bus := &recordingBus{}
	s, store, _ := newTestSession(t, fetcher, bus)

	s.tick()

	select {
	case <-s.Done():
	default:
		t.Fatal("unknown team id must end the session")
	}

	assert.Nil(t, store.State().Team)

	events := bus.all()
	require.Len(t, events, 1)
	invalidated, ok := events[0].(SessionInvalidatedEvent)
	require.True(t, ok)
	assert.Equal(t, "team-1", invalidated.TeamID)
}

func TestSessionStopBarsInFlightCycle(t *testing.T) {
	fetcher := &fakeFetcher{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	fetcher.set(
		domain.MarketTick{Tick: 1, Price: 450},
		domain.Team{ID: "team-1"},
	)
	bus := &recordingBus{}
	s, store, _ := newTestSession(t, fetcher, bus)

	done := make(chan struct{})
	go func() {
		s.tick()
		close(done)
	}()

	<-fetcher.entered
	s.Stop()
	close(fetcher.release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("in-flight cycle never finished")
	}

	state := store.State()
	assert.Nil(t, state.LatestTick, "cycle in flight at Stop must not mutate state")
	assert.Equal(t, 0, state.History.Len())
	assert.Empty(t, bus.all())
}

func TestSessionSkipsOverlappingTick(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.set(domain.MarketTick{Tick: 1, Price: 450}, domain.Team{ID: "team-1"})
	s, _, _ := newTestSession(t, fetcher, nil)

	s.inFlight.Store(true)
	s.tick()

	fetcher.mu.Lock()
	calls := fetcher.tickCalls
	fetcher.mu.Unlock()
	assert.Zero(t, calls, "a tick overlapping an outstanding cycle must be skipped")
}

func TestSessionStopIsIdempotent(t *testing.T) {
	fetcher := &fakeFetcher{}
	fetcher.set(domain.MarketTick{Tick: 1, Price: 450}, domain.Team{ID: "team-1"})
	s, _, _ := newTestSession(t, fetcher, nil)

	s.Start()
	s.Stop()
	s.Stop()
}
