package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vitalyze/terminal/internal/api"
	"github.com/vitalyze/terminal/internal/domain"
	"go.uber.org/zap"
)

// EventBus is where the session publishes snapshot and lifecycle events.
// The TUI bridges it onto its message loop.
type EventBus interface {
	Publish(event interface{})
}

// MarketFetcher is the slice of the API client the poll cycle needs.
type MarketFetcher interface {
	GetTick(ctx context.Context) (*domain.MarketTick, error)
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
}

// SnapshotAppliedEvent is published after every successful cycle, carrying
// the freshly applied state and the transitions detected against the
// previous one.
type SnapshotAppliedEvent struct {
	State       ViewState
	Transitions []Transition
}

// SessionInvalidatedEvent is published when the server no longer knows the
// team id. The owner must drop the persisted id and return to login.
type SessionInvalidatedEvent struct {
	TeamID string
}

// SessionConfig wires a polling session.
type SessionConfig struct {
	TeamID         string
	Client         MarketFetcher
	Store          *Store
	Notifier       *Notifier
	Bus            EventBus
	Logger         *zap.Logger
	Interval       time.Duration // poll cadence, 2s in production
	RequestTimeout time.Duration // per-cycle fetch deadline
}

// Session drives the fetch-reconcile-apply cycle on a fixed cadence for
// one team. It starts when a team session exists and stops on logout or
// when the server invalidates the id. A cycle still in flight when Stop is
// called can never mutate the store afterwards: the store generation is
// bumped before the reset and the cycle's Apply is refused.
type Session struct {
	cfg    *SessionConfig
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.Logger

	// inFlight guards against overlapping cycles if a fetch ever
	// outlives the interval; the late tick is skipped, not queued.
	inFlight atomic.Bool
	stopped  atomic.Bool
}

// NewSession creates a session bound to the parent context.
func NewSession(parent context.Context, cfg *SessionConfig) (*Session, error) {
	if cfg.TeamID == "" {
		return nil, errors.New("team id cannot be empty")
	}
	if cfg.Client == nil || cfg.Store == nil {
		return nil, errors.New("client and store are required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = cfg.Interval
	}

	ctx, cancel := context.WithCancel(parent)
	return &Session{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		logger: cfg.Logger.Named("session").With(zap.String("team_id", cfg.TeamID)),
	}, nil
}

// Start launches the polling loop. The first cycle runs immediately.
func (s *Session) Start() {
	s.logger.Info("starting poll session", zap.Duration("interval", s.cfg.Interval))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run()
	}()
}

// Stop ends the session. No cycle fires after Stop returns, and a cycle
// already in flight is barred from applying its result.
func (s *Session) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.logger.Debug("stopping poll session")
	s.cfg.Store.Reset()
	s.cancel()
	s.wg.Wait()
	s.logger.Info("poll session stopped")
}

// Done is closed when the session's context ends.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Session) run() {
	s.tick()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.ctx.Done():
			return
		}
	}
}

// tick runs one cycle unless the previous one is still outstanding.
func (s *Session) tick() {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug("previous cycle still in flight, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	if err := s.cycle(); err != nil {
		if errors.Is(err, api.ErrTeamNotFound) {
			s.invalidate()
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		// Transient failure: the whole cycle is discarded, nothing
		// is surfaced to the user, the next tick starts fresh.
		s.logger.Warn("poll cycle discarded", zap.Error(err))
	}
}

// cycle fetches tick and team concurrently, reconciles them against the
// previous state and applies the result atomically. Either fetch failing
// discards the cycle as a whole; there is no partial apply.
func (s *Session) cycle() error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.RequestTimeout)
	defer cancel()

	prev, generation := s.cfg.Store.Snapshot()

	var (
		tick *domain.MarketTick
		team *domain.Team
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tick, err = s.cfg.Client.GetTick(gCtx)
		if err != nil {
			return fmt.Errorf("fetch tick: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		team, err = s.cfg.Client.GetTeam(gCtx, s.cfg.TeamID)
		if err != nil {
			return fmt.Errorf("fetch team: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	next, transitions := Reconcile(prev, tick, team)
	if !s.cfg.Store.Apply(generation, next) {
		s.logger.Debug("cycle result dropped, session ended while in flight")
		return nil
	}

	s.react(transitions)

	if s.cfg.Bus != nil {
		s.cfg.Bus.Publish(SnapshotAppliedEvent{
			State:       s.cfg.Store.State(),
			Transitions: transitions,
		})
	}
	return nil
}

// react turns detected transitions into notifications and log lines.
func (s *Session) react(transitions []Transition) {
	for _, tr := range transitions {
		switch tr.Kind {
		case TradeExecuted:
			s.logger.Info("trade executed by server strategy",
				zap.Int("trades_count", tr.TradeCount))
			if s.cfg.Notifier != nil {
				s.cfg.Notifier.Show(MsgTradeExecuted)
			}
		case MarketEventStarted:
			s.logger.Info("market event started",
				zap.String("description", tr.Event.Description),
				zap.Int("remaining", tr.Event.Remaining))
		case MarketEventEnded:
			s.logger.Info("market event ended",
				zap.String("description", tr.Event.Description))
		}
	}
}

// invalidate handles a team fetch 404: the id is stale, the session is
// over.
func (s *Session) invalidate() {
	s.logger.Warn("team id no longer known to server, ending session")

	s.cfg.Store.Reset()
	s.cancel()

	if s.cfg.Bus != nil {
		s.cfg.Bus.Publish(SessionInvalidatedEvent{TeamID: s.cfg.TeamID})
	}
}
