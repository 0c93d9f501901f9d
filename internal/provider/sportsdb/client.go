// Package sportsdb is the TheSportsDB HTTP client used by the sync
// endpoints.
//
// The free tier allows one request every two seconds, enforced here with a
// token bucket limiter. Transient 5xx responses are retried with backoff.
package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxRetries   = 3
	retryBackoff = time.Second
)

// Client is the shared HTTP client for all SportsDB endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	leagueID   string
	season     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a SportsDB client with free-tier rate limiting.
func NewClient(baseURL, leagueID, season string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		leagueID:   leagueID,
		season:     season,
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 1),
		logger:     logger,
	}
}

// Season returns the season the client is configured for.
func (c *Client) Season() string {
	return c.season
}

// Teams fetches all teams in the configured league.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	params := url.Values{"id": {c.leagueID}}
	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.get(ctx, "/lookup_all_teams.php", params, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// PlayersByTeam fetches the roster for one team by its SportsDB id.
func (c *Client) PlayersByTeam(ctx context.Context, teamID string) ([]Player, error) {
	params := url.Values{"id": {teamID}}
	var resp struct {
		Players []Player `json:"player"`
	}
	if err := c.get(ctx, "/lookup_all_players.php", params, &resp); err != nil {
		return nil, err
	}
	return resp.Players, nil
}

// Events fetches all events for the configured league season.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	params := url.Values{"id": {c.leagueID}, "s": {c.season}}
	var resp struct {
		Events []Event `json:"events"`
	}
	if err := c.get(ctx, "/eventsseason.php", params, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// get performs a rate-limited GET request, retrying transient 5xx failures.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying SportsDB request", "path", path, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(retryBackoff * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		body, retryable, err := c.do(ctx, u, path)
		if err != nil {
			lastErr = err
			if retryable {
				continue
			}
			return err
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, u, path string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("sportsdb %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("sportsdb %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}
	return body, false, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
