package ui

import (
	"github.com/vitalyze/terminal/internal/api"
	"github.com/vitalyze/terminal/internal/config"
	"github.com/vitalyze/terminal/internal/monitor"
	"github.com/vitalyze/terminal/internal/storage"
	"go.uber.org/zap"
)

// Services bundles everything screens need, injected once at startup
// instead of reached for as globals.
type Services struct {
	Client   *api.Client
	Store    *monitor.Store
	Notifier *monitor.Notifier
	Gateway  *monitor.StrategyGateway
	Sessions *storage.SessionStore
	Config   *config.Config
	Logger   *zap.Logger
}
