package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalyze/terminal/internal/domain"
)

func emptyState(capacity int) ViewState {
	return ViewState{History: NewPriceBuffer(capacity)}
}

func TestReconcileFirstSnapshot(t *testing.T) {
	tick := &domain.MarketTick{Tick: 1, Price: 450}
	team := &domain.Team{ID: "t1", Balance: domain.InitialBalance}

	next, transitions := Reconcile(emptyState(50), tick, team)

	assert.Empty(t, transitions)
	assert.Equal(t, team, next.Team)
	assert.Equal(t, tick, next.LatestTick)
	assert.Equal(t, 1, next.History.Len())
}

func TestReconcileTradeCountIncrease(t *testing.T) {
	prev := emptyState(50)
	prev.LastTradeCount = 3
	prev.LatestTick = &domain.MarketTick{Tick: 10, Price: 450}

	tick := &domain.MarketTick{Tick: 11, Price: 451}
	team := &domain.Team{ID: "t1", TradesCount: 5}

	next, transitions := Reconcile(prev, tick, team)

	// Two fills arrived in one cycle; one transition, not two.
	require.Len(t, transitions, 1)
	assert.Equal(t, TradeExecuted, transitions[0].Kind)
	assert.Equal(t, 5, transitions[0].TradeCount)
	assert.Equal(t, 5, next.LastTradeCount)
}

func TestReconcileTradeCountDecreaseIsSilent(t *testing.T) {
	prev := emptyState(50)
	prev.LastTradeCount = 7
	prev.LatestTick = &domain.MarketTick{Tick: 10, Price: 450}

	tick := &domain.MarketTick{Tick: 11, Price: 451}
	team := &domain.Team{ID: "t1", TradesCount: 2}

	next, transitions := Reconcile(prev, tick, team)

	assert.Empty(t, transitions, "server reset must resync without a transition")
	assert.Equal(t, 2, next.LastTradeCount)
}

func TestReconcileMarketEventLifecycle(t *testing.T) {
	event := &domain.MarketEvent{
		Type:        "drought",
		Description: "Severe drought in the Midwest",
		Remaining:   8,
	}

	// Absent -> present.
	prev := emptyState(50)
	prev.LatestTick = &domain.MarketTick{Tick: 1, Price: 450}
	next, transitions := Reconcile(prev, &domain.MarketTick{Tick: 2, Price: 455, ActiveEvent: event}, &domain.Team{})
	require.Len(t, transitions, 1)
	assert.Equal(t, MarketEventStarted, transitions[0].Kind)
	assert.Equal(t, event, transitions[0].Event)

	// Present -> present with a different Remaining is not a transition.
	decayed := &domain.MarketEvent{Type: "drought", Description: event.Description, Remaining: 7}
	next, transitions = Reconcile(next, &domain.MarketTick{Tick: 3, Price: 456, ActiveEvent: decayed}, &domain.Team{})
	assert.Empty(t, transitions)

	// Present -> absent reports the event that ended.
	_, transitions = Reconcile(next, &domain.MarketTick{Tick: 4, Price: 452}, &domain.Team{})
	require.Len(t, transitions, 1)
	assert.Equal(t, MarketEventEnded, transitions[0].Kind)
	assert.Equal(t, decayed, transitions[0].Event)
}

func TestReconcileAppendsHistory(t *testing.T) {
	state := emptyState(3)
	for i := int64(1); i <= 5; i++ {
		state, _ = Reconcile(state, &domain.MarketTick{Tick: i, Price: 400 + float64(i)}, &domain.Team{})
	}

	assert.Equal(t, 3, state.History.Len())
	last, ok := state.History.Last()
	require.True(t, ok)
	assert.Equal(t, int64(5), last.Tick)
	assert.InDelta(t, 405.0, last.Price, 1e-9)
}

func TestReconcileDoesNotMutatePrev(t *testing.T) {
	prev := emptyState(50)
	prev.LatestTick = &domain.MarketTick{Tick: 1, Price: 450}
	prev.History.Append(PricePoint{Tick: 1, Price: 450})

	_, _ = Reconcile(prev, &domain.MarketTick{Tick: 2, Price: 451}, &domain.Team{TradesCount: 1})

	assert.Equal(t, 1, prev.History.Len())
	assert.Equal(t, 0, prev.LastTradeCount)
	assert.Equal(t, int64(1), prev.LatestTick.Tick)
}
