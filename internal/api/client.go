// Package api is the HTTP client for the market/portfolio game server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vitalyze/terminal/internal/domain"
	"go.uber.org/zap"
)

// ErrTeamNotFound signals that the server no longer knows the team id.
// For the sync core this means the persisted session is invalid and the
// client must revert to a logged-out state.
var ErrTeamNotFound = errors.New("team not found")

// Client talks to the game server. All calls take a context; the embedded
// http.Client timeout is a backstop only.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8000".
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("api"),
	}
}

// GetTick fetches the current market state.
func (c *Client) GetTick(ctx context.Context) (*domain.MarketTick, error) {
	var tick domain.MarketTick
	if err := c.getJSON(ctx, "/api/market/tick", &tick); err != nil {
		return nil, err
	}
	return &tick, nil
}

// GetTeam fetches the team snapshot. A 404 maps to ErrTeamNotFound.
func (c *Client) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	var team domain.Team
	if err := c.getJSON(ctx, "/api/teams/"+id, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// createTeamResponse matches the server's creation envelope.
type createTeamResponse struct {
	Message string      `json:"message"`
	Team    domain.Team `json:"team"`
}

// CreateTeam registers a new team. The server assigns the id, the default
// strategy and the starting balance.
func (c *Client) CreateTeam(ctx context.Context, name string) (*domain.Team, error) {
	body := map[string]string{"name": name}

	var resp createTeamResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/teams/create", body, &resp); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	c.logger.Info("team created",
		zap.String("team_id", resp.Team.ID),
		zap.String("name", resp.Team.Name))
	return &resp.Team, nil
}

// strategyRequest is the full configuration pushed on deployment.
type strategyRequest struct {
	Strategy   domain.StrategyType   `json:"strategy"`
	Parameters domain.StrategyParams `json:"parameters"`
}

// UpdateStrategy replaces the team's strategy configuration. Only the
// status matters; the body is discarded.
func (c *Client) UpdateStrategy(ctx context.Context, teamID string, strategy domain.StrategyType, params domain.StrategyParams) error {
	req := strategyRequest{Strategy: strategy, Parameters: params}
	if err := c.doJSON(ctx, http.MethodPut, "/api/teams/"+teamID+"/strategy", req, nil); err != nil {
		return fmt.Errorf("update strategy: %w", err)
	}
	return nil
}

// GetEvents fetches the news wire for the ancillary news widget.
func (c *Client) GetEvents(ctx context.Context) ([]domain.NewsItem, error) {
	var items []domain.NewsItem
	if err := c.getJSON(ctx, "/api/events", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetLeaderboard fetches the ranked team standings.
func (c *Client) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := c.getJSON(ctx, "/api/leaderboard", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrTeamNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Drain a little of the body for the log line, then drop it.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("server rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
