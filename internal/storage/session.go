// Package storage persists the one durable artifact the terminal keeps
// across restarts: the team id.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	appDir     = "vitalyze"
	teamIDFile = "team_id"
	filePerm   = 0o600
	dirPerm    = 0o700
)

// SessionStore reads and writes the saved team id. An absent or empty
// file simply means no saved session.
type SessionStore struct {
	path   string
	logger *zap.Logger
}

// NewSessionStore places the id file under the user config dir, or under
// dir when it is non-empty (tests use that).
func NewSessionStore(dir string, logger *zap.Logger) (*SessionStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, appDir)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &SessionStore{
		path:   filepath.Join(dir, teamIDFile),
		logger: logger.Named("storage"),
	}, nil
}

// Load returns the saved team id, or "" when none exists.
func (s *SessionStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read team id: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the team id.
func (s *SessionStore) Save(teamID string) error {
	if err := os.WriteFile(s.path, []byte(teamID+"\n"), filePerm); err != nil {
		return fmt.Errorf("write team id: %w", err)
	}
	s.logger.Debug("team id saved", zap.String("team_id", teamID))
	return nil
}

// Clear removes the saved id. Called when the server reports the id
// unknown.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear team id: %w", err)
	}
	s.logger.Debug("team id cleared")
	return nil
}
