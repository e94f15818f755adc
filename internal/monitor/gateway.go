package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vitalyze/terminal/internal/domain"
	"go.uber.org/zap"
)

// StrategySubmitter is the slice of the API client the gateway needs.
type StrategySubmitter interface {
	UpdateStrategy(ctx context.Context, teamID string, strategy domain.StrategyType, params domain.StrategyParams) error
}

// StrategyDeployedEvent is published after a submission attempt settles.
type StrategyDeployedEvent struct {
	Strategy domain.StrategyType
	Err      error
}

// StrategyGateway pushes a new strategy configuration to the server. It is
// a one-shot request/response wrapper, independent of the polling loop,
// and strictly pessimistic: the locally held config is whatever was last
// fetched, never a speculative value, so a failed submission changes
// nothing but the notification.
type StrategyGateway struct {
	client   StrategySubmitter
	notifier *Notifier
	bus      EventBus
	timeout  time.Duration
	logger   *zap.Logger
}

// NewStrategyGateway creates a gateway with the given request timeout.
func NewStrategyGateway(client StrategySubmitter, notifier *Notifier, bus EventBus, timeout time.Duration, logger *zap.Logger) *StrategyGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StrategyGateway{
		client:   client,
		notifier: notifier,
		bus:      bus,
		timeout:  timeout,
		logger:   logger.Named("gateway"),
	}
}

// Submit sends the full configuration and raises the success or failure
// notification. Transport and remote-rejection failures are treated the
// same way.
func (g *StrategyGateway) Submit(ctx context.Context, teamID string, strategy domain.StrategyType, params domain.StrategyParams) error {
	logger := g.logger.With(
		zap.String("correlation_id", uuid.New().String()),
		zap.String("team_id", teamID),
		zap.String("strategy", string(strategy)))

	logger.Info("deploying strategy",
		zap.Float64("risk_level", params.RiskLevel),
		zap.Float64("entry_threshold", params.EntryThreshold),
		zap.Float64("stop_loss", params.StopLoss),
		zap.Float64("take_profit", params.TakeProfit))

	submitCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	err := g.client.UpdateStrategy(submitCtx, teamID, strategy, params)
	if err != nil {
		logger.Error("strategy deployment failed", zap.Error(err))
		if g.notifier != nil {
			g.notifier.Show(MsgStrategyFailed)
		}
		g.publish(strategy, err)
		return fmt.Errorf("submit strategy: %w", err)
	}

	logger.Info("strategy deployed")
	if g.notifier != nil {
		g.notifier.Show(MsgStrategyUpdated)
	}
	g.publish(strategy, nil)
	return nil
}

func (g *StrategyGateway) publish(strategy domain.StrategyType, err error) {
	if g.bus == nil {
		return
	}
	g.bus.Publish(StrategyDeployedEvent{Strategy: strategy, Err: err})
}
