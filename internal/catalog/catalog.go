package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dugout/internal/core"
	"dugout/internal/logger"
)

// Policy decides whether a cached catalog is still usable. Freshness
// is a fixed calendar cutoff (the season trade deadline), not a
// rolling TTL: once a catalog was fetched after the cutoff it stays
// fresh regardless of age.
type Policy struct {
	Cutoff time.Time
}

// Fresh reports whether a catalog fetched at the given date is fresh.
func (p Policy) Fresh(fetchedAt time.Time) bool {
	return fetchedAt.After(p.Cutoff)
}

// Source lists teams and their active rosters for a refresh.
type Source interface {
	ListTeams(ctx context.Context) ([]core.Entity, error)
	ActiveRoster(ctx context.Context, teamID, season int) ([]core.Entity, error)
}

// Manager owns the on-disk entity catalog cache, its freshness check
// and the refresh that rebuilds it from the StatsAPI.
type Manager struct {
	path   string
	source Source
	policy Policy
	now    func() time.Time
}

// NewManager creates a catalog manager persisting to path.
func NewManager(path string, source Source, policy Policy) *Manager {
	return &Manager{
		path:   path,
		source: source,
		policy: policy,
		now:    time.Now,
	}
}

// EnsureFresh returns a usable catalog, refreshing the cache first if
// it is missing, unreadable, or stale under the freshness policy. All
// failure paths resolve to a (possibly empty) catalog value; callers
// are never interrupted.
func (m *Manager) EnsureFresh(ctx context.Context) *core.Catalog {
	if cached, ok := m.load(); ok && m.policy.Fresh(cached.FetchedAt) {
		return cached
	}

	m.Refresh(ctx)

	if cached, ok := m.load(); ok {
		return cached
	}
	logger.Warn("catalog cache unreadable after refresh, continuing with empty catalog", "path", m.path)
	return &core.Catalog{FetchedAt: m.now()}
}

// Refresh rebuilds the catalog from upstream and persists it,
// overwriting any prior cache. A team whose roster fetch fails
// contributes zero players but does not abort the refresh; if even
// the team list cannot be fetched the result is an empty but still
// timestamped catalog.
func (m *Manager) Refresh(ctx context.Context) *core.Catalog {
	logger.Info("refreshing entity catalog from MLB StatsAPI")

	teams, err := m.source.ListTeams(ctx)
	if err != nil {
		logger.Error("failed to list teams, catalog will be empty", err)
		teams = nil
	}

	season := m.now().Year()
	fresh := &core.Catalog{FetchedAt: m.now()}
	for _, team := range teams {
		fresh.Teams = append(fresh.Teams, team)

		roster, err := m.source.ActiveRoster(ctx, team.ID, season)
		if err != nil {
			logger.Warn("skipping roster for team", "team", team.Name, "error", err.Error())
			continue
		}
		fresh.Players = append(fresh.Players, roster...)
	}

	if err := m.persist(fresh); err != nil {
		logger.Error("failed to persist catalog cache", err, "path", m.path)
	} else {
		logger.Info("catalog refreshed", "teams", len(fresh.Teams), "players", len(fresh.Players))
	}
	return fresh
}

// Fresh reports whether a catalog fetched at the given date passes
// the manager's freshness policy.
func (m *Manager) Fresh(fetchedAt time.Time) bool {
	return m.policy.Fresh(fetchedAt)
}

// Cached returns the currently persisted catalog without any
// freshness check or refresh. ok is false when no readable cache
// exists.
func (m *Manager) Cached() (*core.Catalog, bool) {
	return m.load()
}

// cacheFile is the persisted catalog layout:
// {teams: [{id,name}], players: [{id,name}], timestamp: "YYYY-MM-DD"}.
type cacheFile struct {
	Teams     []cachedEntity `json:"teams"`
	Players   []cachedEntity `json:"players"`
	Timestamp string         `json:"timestamp"`
}

type cachedEntity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// load reads the cache file. ok is false when the file is missing or
// not valid JSON; a missing or unparseable timestamp loads as an
// epoch far in the past so the policy treats it as stale.
func (m *Manager) load() (*core.Catalog, bool) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, false
	}
	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("catalog cache is not valid JSON, treating as stale", "path", m.path)
		return nil, false
	}

	fetchedAt, err := time.Parse("2006-01-02", file.Timestamp)
	if err != nil {
		fetchedAt = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	catalog := &core.Catalog{FetchedAt: fetchedAt}
	for _, t := range file.Teams {
		if t.ID == 0 || t.Name == "" {
			continue
		}
		catalog.Teams = append(catalog.Teams, core.Entity{ID: t.ID, Name: t.Name, Kind: core.KindTeam})
	}
	for _, p := range file.Players {
		if p.ID == 0 || p.Name == "" {
			continue
		}
		catalog.Players = append(catalog.Players, core.Entity{ID: p.ID, Name: p.Name, Kind: core.KindPlayer})
	}
	return catalog, true
}

func (m *Manager) persist(catalog *core.Catalog) error {
	file := cacheFile{
		Timestamp: catalog.FetchedAt.Format("2006-01-02"),
		Teams:     make([]cachedEntity, 0, len(catalog.Teams)),
		Players:   make([]cachedEntity, 0, len(catalog.Players)),
	}
	for _, t := range catalog.Teams {
		file.Teams = append(file.Teams, cachedEntity{ID: t.ID, Name: t.Name})
	}
	for _, p := range catalog.Players {
		file.Players = append(file.Players, cachedEntity{ID: p.ID, Name: p.Name})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}
