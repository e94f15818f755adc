package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitalyze/terminal/internal/domain"
)

func TestStoreApplySameGeneration(t *testing.T) {
	st := NewStore(50, zap.NewNop())

	prev, gen := st.Snapshot()
	next, _ := Reconcile(prev, &domain.MarketTick{Tick: 1, Price: 450}, &domain.Team{ID: "t1"})

	require.True(t, st.Apply(gen, next))

	got := st.State()
	require.NotNil(t, got.LatestTick)
	assert.Equal(t, int64(1), got.LatestTick.Tick)
	assert.Equal(t, "t1", got.Team.ID)
}

func TestStoreApplyRefusesStaleGeneration(t *testing.T) {
	st := NewStore(50, zap.NewNop())

	prev, gen := st.Snapshot()
	next, _ := Reconcile(prev, &domain.MarketTick{Tick: 1, Price: 450}, &domain.Team{ID: "t1"})

	// Session ended between snapshot and apply.
	st.Reset()

	assert.False(t, st.Apply(gen, next))

	got := st.State()
	assert.Nil(t, got.LatestTick, "stale apply must not repopulate the store")
	assert.Nil(t, got.Team)
	assert.Equal(t, 0, got.History.Len())
}

func TestStoreApplyPreservesNotification(t *testing.T) {
	st := NewStore(50, zap.NewNop())
	st.SetNotification(&Notification{Message: MsgTradeExecuted, Expiry: time.Now().Add(time.Second)})

	prev, gen := st.Snapshot()
	next, _ := Reconcile(prev, &domain.MarketTick{Tick: 1, Price: 450}, &domain.Team{})
	require.True(t, st.Apply(gen, next))

	got := st.State()
	require.NotNil(t, got.Notification)
	assert.Equal(t, MsgTradeExecuted, got.Notification.Message)
}

func TestStoreSeedSetsTradeBaseline(t *testing.T) {
	st := NewStore(50, zap.NewNop())
	st.Seed(&domain.Team{ID: "t1", TradesCount: 7})

	got := st.State()
	require.NotNil(t, got.Team)
	assert.Equal(t, "t1", got.Team.ID)
	assert.Equal(t, 7, got.LastTradeCount)

	// A poll cycle reconciled against the seeded state sees no trade
	// transition for the pre-existing count.
	prev, gen := st.Snapshot()
	next, transitions := Reconcile(prev, &domain.MarketTick{Tick: 1, Price: 450}, &domain.Team{ID: "t1", TradesCount: 7})
	assert.Empty(t, transitions)
	require.True(t, st.Apply(gen, next))
}

func TestStoreResetEmptiesState(t *testing.T) {
	st := NewStore(5, zap.NewNop())

	prev, gen := st.Snapshot()
	next, _ := Reconcile(prev, &domain.MarketTick{Tick: 1, Price: 450}, &domain.Team{ID: "t1", TradesCount: 2})
	require.True(t, st.Apply(gen, next))
	st.SetNotification(&Notification{Message: MsgTradeExecuted})

	st.Reset()

	got := st.State()
	assert.Nil(t, got.Team)
	assert.Nil(t, got.LatestTick)
	assert.Nil(t, got.Notification)
	assert.Equal(t, 0, got.LastTradeCount)
	assert.Equal(t, 0, got.History.Len())
	assert.Equal(t, 5, got.History.Capacity(), "reset keeps the configured history capacity")
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	st := NewStore(50, zap.NewNop())

	prev, gen := st.Snapshot()
	next, _ := Reconcile(prev, &domain.MarketTick{Tick: 1, Price: 450}, &domain.Team{})
	require.True(t, st.Apply(gen, next))

	snap := st.State()
	snap.History.Append(PricePoint{Tick: 99, Price: 1})

	assert.Equal(t, 1, st.State().History.Len(), "mutating a snapshot must not leak into the store")
}
