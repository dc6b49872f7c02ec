package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dugout/internal/core"
)

// Client talks to the MLB StatsAPI.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a StatsAPI client with the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListTeams returns every MLB team (sportId=1). Teams missing an ID or
// name upstream are dropped.
func (c *Client) ListTeams(ctx context.Context) ([]core.Entity, error) {
	params := url.Values{}
	params.Set("sportId", "1")

	var payload struct {
		Teams []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"teams"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/teams", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	teams := make([]core.Entity, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		if t.ID == 0 || t.Name == "" {
			continue
		}
		teams = append(teams, core.Entity{ID: t.ID, Name: t.Name, Kind: core.KindTeam})
	}
	return teams, nil
}

// ActiveRoster returns the active roster for a team in the given season.
// Roster entries missing a person ID or full name are dropped.
func (c *Client) ActiveRoster(ctx context.Context, teamID, season int) ([]core.Entity, error) {
	params := url.Values{}
	params.Set("season", strconv.Itoa(season))
	params.Set("rosterType", "Active")

	endpoint := fmt.Sprintf("%s/teams/%d/roster", c.baseURL, teamID)
	var payload struct {
		Roster []struct {
			Person struct {
				ID       int    `json:"id"`
				FullName string `json:"fullName"`
			} `json:"person"`
		} `json:"roster"`
	}
	if err := c.getJSON(ctx, endpoint, params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch roster for team %d: %w", teamID, err)
	}

	players := make([]core.Entity, 0, len(payload.Roster))
	for _, entry := range payload.Roster {
		if entry.Person.ID == 0 || entry.Person.FullName == "" {
			continue
		}
		players = append(players, core.Entity{
			ID:   entry.Person.ID,
			Name: entry.Person.FullName,
			Kind: core.KindPlayer,
		})
	}
	return players, nil
}

// PlayerStats fetches current-season stats for a player.
func (c *Client) PlayerStats(ctx context.Context, playerID int) (StatsPayload, error) {
	params := url.Values{}
	params.Set("stats", "season")

	endpoint := fmt.Sprintf("%s/people/%d/stats", c.baseURL, playerID)
	var payload StatsPayload
	if err := c.getJSON(ctx, endpoint, params, &payload); err != nil {
		return StatsPayload{}, fmt.Errorf("failed to fetch player stats for %d: %w", playerID, err)
	}
	return payload, nil
}

// TeamStats fetches single-season team stats for the given season.
func (c *Client) TeamStats(ctx context.Context, teamID, season int) (StatsPayload, error) {
	params := url.Values{}
	params.Set("stats", "statsSingleSeason")
	params.Set("season", strconv.Itoa(season))
	params.Set("group", "team")
	params.Set("sportIds", "1")
	params.Set("gameType", "R")

	endpoint := fmt.Sprintf("%s/teams/%d/stats", c.baseURL, teamID)
	var payload StatsPayload
	if err := c.getJSON(ctx, endpoint, params, &payload); err != nil {
		return StatsPayload{}, fmt.Errorf("failed to fetch team stats for %d: %w", teamID, err)
	}
	return payload, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	fullURL := endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
