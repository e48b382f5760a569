package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"dota-stats/internal/config"
	"dota-stats/internal/constants"

	"github.com/itbasis/go-clock"
	"github.com/valyala/fasthttp"
)

type StratzClient struct {
	apiKey      string
	baseURL     string
	client      *fasthttp.Client
	clock       clock.Clock
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// per-hour window reported alongside the per-second one
	HourLimit     int `json:"hour_limit"`
	HourRemaining int `json:"hour_remaining"`

	UpdatedAt time.Time `json:"updated_at"`
}

// ErrRateLimited is returned without contacting upstream while the last
// reported hourly budget is spent.
var ErrRateLimited = errors.New("stratz hourly rate limit exhausted")

// APIError is returned for any non-200 upstream response.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stratz API error: %d (%s)", e.StatusCode, e.URL)
}

func NewStratzClient(cfg *config.Config, clk clock.Clock) *StratzClient {
	return &StratzClient{
		apiKey:  cfg.StratzAPIKey,
		baseURL: strings.TrimRight(cfg.StratzBaseURL, "/"),
		clock:   clk,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			Limit:         20,
			Remaining:     20,
			HourLimit:     2000,
			HourRemaining: 2000,
			UpdatedAt:     clk.Now(),
		},
	}
}

// Enabled reports whether an API token is configured.
func (c *StratzClient) Enabled() bool {
	return c.apiKey != ""
}

func (c *StratzClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

// rateLimitDelay consults the last reported budget. A spent hourly budget
// fails fast until an hour has passed since the report; a spent per-second
// budget asks the caller to wait out the rest of that second.
func (c *StratzClient) rateLimitDelay() (time.Duration, error) {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()

	elapsed := c.clock.Now().Sub(c.rateLimit.UpdatedAt)
	if c.rateLimit.HourRemaining <= 0 && elapsed < time.Hour {
		return 0, ErrRateLimited
	}
	if c.rateLimit.Remaining <= 0 && elapsed < time.Second {
		return time.Second - elapsed, nil
	}
	return 0, nil
}

func (c *StratzClient) waitForBudget(ctx context.Context) error {
	for {
		delay, err := c.rateLimitDelay()
		if err != nil || delay <= 0 {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *StratzClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit-Second")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining-Second")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if limit := string(resp.Header.Peek("X-Ratelimit-Limit-Hour")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.HourLimit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining-Hour")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.HourRemaining = val
		}
	}
	c.rateLimit.UpdatedAt = c.clock.Now()
}

func (c *StratzClient) GetMatch(ctx context.Context, matchID int64) (*MatchPayload, error) {
	url := fmt.Sprintf("%s/match/%d", c.baseURL, matchID)
	return doRequest[MatchPayload](ctx, c, url)
}

// GetLeagueMatches returns one page of a league's matches.
func (c *StratzClient) GetLeagueMatches(ctx context.Context, leagueID int64, take, skip int) ([]MatchPayload, error) {
	url := fmt.Sprintf("%s/league/%d/matches?take=%d&skip=%d", c.baseURL, leagueID, take, skip)
	page, err := doRequest[[]MatchPayload](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *page, nil
}

// GetLeagues returns the most recently started leagues.
func (c *StratzClient) GetLeagues(ctx context.Context, take int) ([]LeaguePayload, error) {
	url := fmt.Sprintf("%s/league?take=%d&orderBy=-startDateTime", c.baseURL, take)
	list, err := doRequest[[]LeaguePayload](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// GetLeagueSeries returns one page of a league's series with their matches.
func (c *StratzClient) GetLeagueSeries(ctx context.Context, leagueID int64, take, skip int) ([]SeriesPayload, error) {
	url := fmt.Sprintf("%s/league/%d/series?take=%d&skip=%d", c.baseURL, leagueID, take, skip)
	page, err := doRequest[[]SeriesPayload](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *page, nil
}

func (c *StratzClient) GetTeam(ctx context.Context, teamID int64) (*TeamPayload, error) {
	url := fmt.Sprintf("%s/team/%d", c.baseURL, teamID)
	return doRequest[TeamPayload](ctx, c, url)
}

func doRequest[T any](ctx context.Context, client *StratzClient, url string) (*T, error) {
	if err := client.waitForBudget(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+client.apiKey)
	req.Header.Set("User-Agent", "STRATZ_API")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.DoTimeout(req, resp, constants.ExternalAPITimeout); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode(), URL: url}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return &result, nil
}

// MatchPayload mirrors the subset of the upstream match document that is
// persisted. Pointer fields are nullable upstream.
type MatchPayload struct {
	ID              int64                `json:"id"`
	DidRadiantWin   bool                 `json:"didRadiantWin"`
	DurationSeconds int64                `json:"durationSeconds"`
	StartDateTime   int64                `json:"startDateTime"`
	EndDateTime     *int64               `json:"endDateTime"`
	LeagueID        *int64               `json:"leagueId"`
	SeriesID        *int64               `json:"seriesId"`
	RadiantTeamID   *int64               `json:"radiantTeamId"`
	DireTeamID      *int64               `json:"direTeamId"`
	GameVersionID   *int64               `json:"gameVersionId"`
	GameMode        int64                `json:"gameMode"`
	LobbyType       int64                `json:"lobbyType"`
	PickBans        []PickBanPayload     `json:"pickBans"`
	Players         []MatchPlayerPayload `json:"players"`
}

type PickBanPayload struct {
	Order                 int    `json:"order"`
	IsPick                bool   `json:"isPick"`
	HeroID                *int64 `json:"heroId"`
	BannedHeroID          *int64 `json:"bannedHeroId"`
	IsRadiant             *bool  `json:"isRadiant"`
	PlayerIndex           *int   `json:"playerIndex"`
	WasBannedSuccessfully *bool  `json:"wasBannedSuccessfully"`
}

type MatchPlayerPayload struct {
	MatchID        int64 `json:"matchId"`
	SteamAccountID int64 `json:"steamAccountId"`
	HeroID         int64 `json:"heroId"`
	IsRadiant      bool  `json:"isRadiant"`
	PlayerSlot     int   `json:"playerSlot"`
	NumKills       int   `json:"numKills"`
	NumDeaths      int   `json:"numDeaths"`
	NumAssists     int   `json:"numAssists"`
	IsVictory      bool  `json:"isVictory"`
}

type LeaguePayload struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DisplayName   string `json:"displayName"`
	Tier          *int   `json:"tier"`
	StartDateTime *int64 `json:"startDateTime"`
	EndDateTime   *int64 `json:"endDateTime"`
}

type SeriesPayload struct {
	ID            int64          `json:"id"`
	LeagueID      *int64         `json:"leagueId"`
	Type          *int           `json:"type"`
	TeamOneID     *int64         `json:"teamOneId"`
	TeamTwoID     *int64         `json:"teamTwoId"`
	LastMatchDate int64          `json:"lastMatchDate"`
	Matches       []MatchPayload `json:"matches"`
}

type TeamPayload struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Tag            string `json:"tag"`
	Rank           *int   `json:"rank"`
	IsProfessional bool   `json:"isProfessional"`
	Members        []struct {
		SteamAccount struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"steamAccount"`
		LastMatchID int64 `json:"lastMatchId"`
	} `json:"members"`
}
