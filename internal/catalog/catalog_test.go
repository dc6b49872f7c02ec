package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dugout/internal/core"
)

var cutoff = time.Date(2024, 7, 30, 0, 0, 0, 0, time.UTC)

// fakeSource is a scripted catalog Source.
type fakeSource struct {
	teams       []core.Entity
	teamsErr    error
	rosters     map[int][]core.Entity
	rosterErrs  map[int]error
	listCalls   int
	rosterCalls int
}

func (f *fakeSource) ListTeams(ctx context.Context) ([]core.Entity, error) {
	f.listCalls++
	if f.teamsErr != nil {
		return nil, f.teamsErr
	}
	return f.teams, nil
}

func (f *fakeSource) ActiveRoster(ctx context.Context, teamID, season int) ([]core.Entity, error) {
	f.rosterCalls++
	if err := f.rosterErrs[teamID]; err != nil {
		return nil, err
	}
	return f.rosters[teamID], nil
}

func newTestManager(t *testing.T, source Source) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entities.json")
	return NewManager(path, source, Policy{Cutoff: cutoff}), path
}

func writeCache(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write cache file: %v", err)
	}
}

func TestPolicyFresh(t *testing.T) {
	p := Policy{Cutoff: cutoff}

	if p.Fresh(cutoff) {
		t.Error("a catalog fetched exactly on the cutoff is stale")
	}
	if p.Fresh(cutoff.AddDate(0, 0, -1)) {
		t.Error("a catalog fetched before the cutoff is stale")
	}
	if !p.Fresh(cutoff.AddDate(0, 0, 1)) {
		t.Error("a catalog fetched after the cutoff is fresh")
	}
}

func TestEnsureFreshUsesFreshCache(t *testing.T) {
	source := &fakeSource{}
	m, path := newTestManager(t, source)
	writeCache(t, path, `{"teams":[{"id":147,"name":"New York Yankees"}],"players":[{"id":592450,"name":"Aaron Judge"}],"timestamp":"2024-08-01"}`)

	cat := m.EnsureFresh(context.Background())

	if source.listCalls != 0 {
		t.Errorf("fresh cache must not trigger a refresh, got %d upstream calls", source.listCalls)
	}
	if len(cat.Teams) != 1 || len(cat.Players) != 1 {
		t.Fatalf("unexpected catalog: %+v", cat)
	}
	if cat.Teams[0].Kind != core.KindTeam || cat.Players[0].Kind != core.KindPlayer {
		t.Errorf("loaded entities should carry their kind: %+v", cat)
	}
}

func TestEnsureFreshRefreshesOnOrBeforeCutoff(t *testing.T) {
	for _, timestamp := range []string{"2024-07-30", "2024-07-01"} {
		source := &fakeSource{
			teams:   []core.Entity{{ID: 111, Name: "Boston Red Sox", Kind: core.KindTeam}},
			rosters: map[int][]core.Entity{111: {{ID: 1, Name: "Some Player", Kind: core.KindPlayer}}},
		}
		m, path := newTestManager(t, source)
		writeCache(t, path, fmt.Sprintf(`{"teams":[{"id":147,"name":"New York Yankees"}],"players":[],"timestamp":"%s"}`, timestamp))

		cat := m.EnsureFresh(context.Background())

		if source.listCalls != 1 {
			t.Errorf("timestamp %s: expected exactly one refresh, got %d", timestamp, source.listCalls)
		}
		if len(cat.Teams) != 1 || cat.Teams[0].ID != 111 {
			t.Errorf("timestamp %s: expected refreshed catalog, got %+v", timestamp, cat)
		}
	}
}

func TestEnsureFreshRefreshesMissingOrCorruptCache(t *testing.T) {
	cases := map[string]func(t *testing.T, path string){
		"missing":      func(t *testing.T, path string) {},
		"corrupt":      func(t *testing.T, path string) { writeCache(t, path, "{not json") },
		"no timestamp": func(t *testing.T, path string) { writeCache(t, path, `{"teams":[],"players":[]}`) },
		"bad timestamp": func(t *testing.T, path string) {
			writeCache(t, path, `{"teams":[],"players":[],"timestamp":"soon"}`)
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			source := &fakeSource{teams: []core.Entity{{ID: 147, Name: "New York Yankees", Kind: core.KindTeam}}}
			m, path := newTestManager(t, source)
			setup(t, path)

			cat := m.EnsureFresh(context.Background())

			if source.listCalls != 1 {
				t.Errorf("expected a refresh, got %d upstream calls", source.listCalls)
			}
			if len(cat.Teams) != 1 {
				t.Errorf("expected refreshed catalog, got %+v", cat)
			}
		})
	}
}

func TestRefreshPartialRosterFailure(t *testing.T) {
	source := &fakeSource{
		teams: []core.Entity{
			{ID: 147, Name: "New York Yankees", Kind: core.KindTeam},
			{ID: 111, Name: "Boston Red Sox", Kind: core.KindTeam},
		},
		rosters: map[int][]core.Entity{
			147: {{ID: 592450, Name: "Aaron Judge", Kind: core.KindPlayer}},
		},
		rosterErrs: map[int]error{
			111: fmt.Errorf("roster endpoint down"),
		},
	}
	m, _ := newTestManager(t, source)

	cat := m.Refresh(context.Background())

	// The failing team contributes zero players but stays in the catalog.
	if len(cat.Teams) != 2 {
		t.Errorf("expected both teams despite roster failure, got %d", len(cat.Teams))
	}
	if len(cat.Players) != 1 || cat.Players[0].ID != 592450 {
		t.Errorf("expected players from the healthy team only, got %+v", cat.Players)
	}
}

func TestRefreshTeamListFailure(t *testing.T) {
	source := &fakeSource{teamsErr: fmt.Errorf("api down")}
	m, path := newTestManager(t, source)

	cat := m.Refresh(context.Background())

	if !cat.IsEmpty() {
		t.Errorf("expected empty catalog, got %+v", cat)
	}
	if cat.FetchedAt.IsZero() {
		t.Error("even an empty catalog must be timestamped")
	}

	// The empty catalog is still persisted with its timestamp.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected cache file to exist after failed refresh: %v", err)
	}
}

func TestRefreshPersistsAndRoundTrips(t *testing.T) {
	source := &fakeSource{
		teams:   []core.Entity{{ID: 147, Name: "New York Yankees", Kind: core.KindTeam}},
		rosters: map[int][]core.Entity{147: {{ID: 592450, Name: "Aaron Judge", Kind: core.KindPlayer}}},
	}
	m, _ := newTestManager(t, source)
	m.now = func() time.Time { return time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC) }

	m.Refresh(context.Background())

	loaded, ok := m.Cached()
	if !ok {
		t.Fatal("expected a readable cache after refresh")
	}
	if got := loaded.FetchedAt.Format("2006-01-02"); got != "2025-08-15" {
		t.Errorf("expected persisted date 2025-08-15, got %s", got)
	}
	if len(loaded.Teams) != 1 || len(loaded.Players) != 1 {
		t.Errorf("unexpected round-tripped catalog: %+v", loaded)
	}
}

func TestLoadDropsEntitiesMissingIDOrName(t *testing.T) {
	m, path := newTestManager(t, &fakeSource{})
	writeCache(t, path, `{
		"teams":[{"id":147,"name":"New York Yankees"},{"id":0,"name":"Ghost Team"},{"id":5,"name":""}],
		"players":[{"id":592450,"name":"Aaron Judge"},{"name":"No ID"}],
		"timestamp":"2024-08-01"}`)

	cat, ok := m.Cached()
	if !ok {
		t.Fatal("expected readable cache")
	}
	if len(cat.Teams) != 1 || len(cat.Players) != 1 {
		t.Errorf("entities missing id or name must be dropped at ingestion: %+v", cat)
	}
}
