// Package league provides the ESPN fantasy football client that supplies
// league metadata and weekly matchups.
//
// ESPN authenticates private leagues with the espn_s2 and SWID browser
// cookies. Requests are rate-limited via a token bucket limiter.
package league

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/fantasy-recap/internal/recap"
)

// DefaultBaseURL is the public ESPN fantasy football read API.
const DefaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

// firstModernSeason is the first season served by the /seasons endpoint;
// older seasons live under /leagueHistory.
const firstModernSeason = 2018

var (
	// ErrUpstream covers every failure to reach or read the league source.
	ErrUpstream = errors.New("league source unavailable")
	// ErrUnauthorized means ESPN rejected the league credentials.
	ErrUnauthorized = fmt.Errorf("%w: credentials rejected", ErrUpstream)
)

// Recorder receives one observation per upstream request.
type Recorder interface {
	ObserveUpstream(service, outcome string, d time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	LeagueID          int
	ESPNS2            string
	SWID              string
	RequestsPerMinute int
	Timeout           time.Duration
	Logger            *slog.Logger
	Recorder          Recorder
	HTTPClient        *http.Client
}

// Client is the ESPN league client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	leagueID   int
	espnS2     string
	swid       string
	limiter    *rate.Limiter
	logger     *slog.Logger
	recorder   Recorder
}

// NewClient creates an ESPN client with rate limiting.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	perMinute := opts.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		leagueID:   opts.LeagueID,
		espnS2:     opts.ESPNS2,
		swid:       opts.SWID,
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
		logger:     logger,
		recorder:   opts.Recorder,
	}
}

// League returns the league's display name and current week for a season.
func (c *Client) League(ctx context.Context, year int) (recap.League, error) {
	lr, err := c.fetch(ctx, year)
	if err != nil {
		return recap.League{}, err
	}
	return recap.League{
		ID:          c.leagueID,
		Name:        lr.Settings.Name,
		Year:        year,
		CurrentWeek: lr.currentWeek(),
	}, nil
}

// Matchups returns the week's head-to-head results in ESPN schedule order.
// Bye entries are skipped. An empty slice means ESPN has no results for the
// week.
func (c *Client) Matchups(ctx context.Context, year, week int) ([]recap.Matchup, error) {
	lr, err := c.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(lr.Teams))
	for _, t := range lr.Teams {
		names[t.ID] = t.displayName()
	}
	teamName := func(id int) string {
		if n, ok := names[id]; ok {
			return n
		}
		return "Team " + strconv.Itoa(id)
	}

	var out []recap.Matchup
	for _, s := range lr.Schedule {
		if s.MatchupPeriodID != week || s.Away == nil || s.Home == nil {
			continue
		}
		out = append(out, recap.NewMatchup(
			teamName(s.Home.TeamID), teamName(s.Away.TeamID),
			s.Home.TotalPoints, s.Away.TotalPoints,
		))
	}
	c.logger.Debug("ESPN scoreboard loaded", "year", year, "week", week, "matchups", len(out))
	return out, nil
}

// fetch performs a rate-limited GET of the league document.
func (c *Client) fetch(ctx context.Context, year int) (*leagueResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Add("view", "mSettings")
	params.Add("view", "mTeam")
	params.Add("view", "mMatchupScore")

	var path string
	historical := year < firstModernSeason
	if historical {
		path = fmt.Sprintf("/leagueHistory/%d", c.leagueID)
		params.Set("seasonId", strconv.Itoa(year))
	} else {
		path = fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", year, c.leagueID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.espnS2})
	req.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("error", start)
		return nil, fmt.Errorf("%w: request league %d: %w", ErrUpstream, c.leagueID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe("error", start)
		return nil, fmt.Errorf("%w: read response body: %w", ErrUpstream, err)
	}
	c.observe(strconv.Itoa(resp.StatusCode), start)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (HTTP %d)", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: ESPN %s returned %d: %s", ErrUpstream, path, resp.StatusCode, truncate(body, 200))
	}

	var lr leagueResponse
	if historical {
		var history []leagueResponse
		if err := json.Unmarshal(body, &history); err != nil {
			return nil, fmt.Errorf("%w: decode league history: %w", ErrUpstream, err)
		}
		if len(history) == 0 {
			return nil, fmt.Errorf("%w: no history for season %d", ErrUpstream, year)
		}
		lr = history[0]
	} else if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("%w: decode league: %w", ErrUpstream, err)
	}
	return &lr, nil
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveUpstream("espn", outcome, time.Since(start))
	}
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
