package api

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/vitalyze/terminal/internal/domain"
	"go.uber.org/zap"
)

// One-shot calls made outside the polling loop (restoring a saved session
// at startup, creating a team) may retry transient transport failures with
// exponential backoff. The poll loop itself never retries within a cycle:
// a failed cycle is discarded and the next tick starts fresh.

// GetTeamWithRetry fetches a team, retrying transient errors. A 404 is
// permanent: the id is stale, not the network.
func (c *Client) GetTeamWithRetry(ctx context.Context, id string, maxTries uint) (*domain.Team, error) {
	operation := func() (*domain.Team, error) {
		team, err := c.GetTeam(ctx, id)
		if errors.Is(err, ErrTeamNotFound) {
			return nil, backoff.Permanent(err)
		}
		return team, err
	}
	return retry(ctx, c.logger, "restore team", operation, maxTries)
}

// CreateTeamWithRetry registers a team, retrying transient errors.
func (c *Client) CreateTeamWithRetry(ctx context.Context, name string, maxTries uint) (*domain.Team, error) {
	operation := func() (*domain.Team, error) {
		return c.CreateTeam(ctx, name)
	}
	return retry(ctx, c.logger, "create team", operation, maxTries)
}

func retry[T any](ctx context.Context, logger *zap.Logger, op string, operation backoff.Operation[T], maxTries uint) (T, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second

	notify := func(err error, next time.Duration) {
		logger.Info("retrying after error",
			zap.String("operation", op),
			zap.Error(err),
			zap.Duration("backoff", next))
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(maxTries),
		backoff.WithNotify(notify))
}
