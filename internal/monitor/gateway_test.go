package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitalyze/terminal/internal/domain"
)

type fakeSubmitter struct {
	err      error
	teamID   string
	strategy domain.StrategyType
	params   domain.StrategyParams
	calls    int
}

func (f *fakeSubmitter) UpdateStrategy(ctx context.Context, teamID string, strategy domain.StrategyType, params domain.StrategyParams) error {
	f.calls++
	f.teamID = teamID
	f.strategy = strategy
	f.params = params
	return f.err
}

func TestGatewaySubmitSuccess(t *testing.T) {
	store := NewStore(10, zap.NewNop())
	notifier := NewNotifier(store, nil, time.Minute, zap.NewNop())
	submitter := &fakeSubmitter{}
	bus := &recordingBus{}
	g := NewStrategyGateway(submitter, notifier, bus, time.Second, zap.NewNop())

	params := domain.StrategyParams{RiskLevel: 2.5, EntryThreshold: 1.0, StopLoss: 5, TakeProfit: 12}
	err := g.Submit(context.Background(), "team-1", domain.StrategyHedger, params)
	require.NoError(t, err)

	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, "team-1", submitter.teamID)
	assert.Equal(t, domain.StrategyHedger, submitter.strategy)
	assert.Equal(t, params, submitter.params)

	got := store.State().Notification
	require.NotNil(t, got)
	assert.Equal(t, MsgStrategyUpdated, got.Message)

	events := bus.all()
	require.Len(t, events, 1)
	deployed, ok := events[0].(StrategyDeployedEvent)
	require.True(t, ok)
	assert.NoError(t, deployed.Err)
	assert.Equal(t, domain.StrategyHedger, deployed.Strategy)
}

func TestGatewaySubmitFailure(t *testing.T) {
	store := NewStore(10, zap.NewNop())
	notifier := NewNotifier(store, nil, time.Minute, zap.NewNop())
	cause := errors.New("server rejected")
	submitter := &fakeSubmitter{err: cause}
	bus := &recordingBus{}
	g := NewStrategyGateway(submitter, notifier, bus, time.Second, zap.NewNop())

	err := g.Submit(context.Background(), "team-1", domain.StrategyMomentum, domain.DefaultStrategyParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	got := store.State().Notification
	require.NotNil(t, got)
	assert.Equal(t, MsgStrategyFailed, got.Message)

	events := bus.all()
	require.Len(t, events, 1)
	deployed := events[0].(StrategyDeployedEvent)
	assert.ErrorIs(t, deployed.Err, cause)
}
