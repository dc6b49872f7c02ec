package enrich

import (
	"context"
	"fmt"
	"testing"

	"dugout/internal/core"
	"dugout/internal/mlb"
	"dugout/internal/news"
	"dugout/internal/resolve"
	"dugout/internal/sentiment"
)

type fakeStats struct {
	payload     mlb.StatsPayload
	err         error
	playerCalls int
	teamCalls   int
}

func (f *fakeStats) PlayerStats(ctx context.Context, playerID int) (mlb.StatsPayload, error) {
	f.playerCalls++
	return f.payload, f.err
}

func (f *fakeStats) TeamStats(ctx context.Context, teamID, season int) (mlb.StatsPayload, error) {
	f.teamCalls++
	return f.payload, f.err
}

type fakeNews struct {
	articles []core.Article
	err      error
	gotQuery string
	gotMax   int
}

func (f *fakeNews) Search(ctx context.Context, query string, window news.Window, maxResults int) ([]core.Article, error) {
	f.gotQuery = query
	f.gotMax = maxResults
	return f.articles, f.err
}

type fakeSink struct {
	appends [][]core.Article
	err     error
}

func (f *fakeSink) AppendArticles(articles []core.Article) error {
	f.appends = append(f.appends, articles)
	return f.err
}

func teamResolution() resolve.Resolution {
	return resolve.Resolution{
		Found:  true,
		Entity: core.Entity{ID: 147, Name: "New York Yankees", Kind: core.KindTeam},
	}
}

func TestEnrichTeamHappyPath(t *testing.T) {
	stats := &fakeStats{payload: mlb.StatsPayload{Stats: []mlb.StatGroup{{Splits: []mlb.Split{{Stat: map[string]any{"wins": float64(92)}}}}}}}
	newsClient := &fakeNews{articles: []core.Article{
		{Title: "Big win", Description: "A fantastic, wonderful win"},
		{Title: "Plain report", Description: ""},
	}}
	sink := &fakeSink{}

	o := New(stats, newsClient, sentiment.NewAnalyzer(), sink, 10)
	result := o.Enrich(context.Background(), teamResolution(), news.Window{})

	if result.StatsOutcome != OutcomeOK {
		t.Errorf("stats outcome = %s, want ok", result.StatsOutcome)
	}
	if stats.teamCalls != 1 || stats.playerCalls != 0 {
		t.Errorf("team resolution must hit the team endpoint: %+v", stats)
	}
	if newsClient.gotQuery != "New York Yankees" {
		t.Errorf("news query = %q, want canonical name", newsClient.gotQuery)
	}
	if newsClient.gotMax != 10 {
		t.Errorf("news max = %d, want 10", newsClient.gotMax)
	}
	if result.NewsOutcome != OutcomeOK || len(result.Articles) != 2 {
		t.Fatalf("unexpected news result: %s, %d articles", result.NewsOutcome, len(result.Articles))
	}

	// Every article is scored before persistence
	for _, a := range result.Articles {
		if !a.Scored {
			t.Errorf("article %q not scored before persistence", a.Title)
		}
	}
	if len(sink.appends) != 1 || len(sink.appends[0]) != 2 {
		t.Errorf("expected one append of two scored articles, got %+v", sink.appends)
	}

	if result.RunID == "" {
		t.Error("result should carry a run id")
	}
}

func TestEnrichStatsFailureDoesNotAbortNews(t *testing.T) {
	// The stats fetch fails but the news and sentiment stage still
	// runs.
	stats := &fakeStats{err: fmt.Errorf("stats api down")}
	newsClient := &fakeNews{articles: []core.Article{{Title: "Still here", Description: "great news"}}}
	sink := &fakeSink{}

	o := New(stats, newsClient, sentiment.NewAnalyzer(), sink, 10)
	result := o.Enrich(context.Background(), teamResolution(), news.Window{})

	if result.StatsOutcome != OutcomeUpstreamFailure {
		t.Errorf("stats outcome = %s, want upstream_failure", result.StatsOutcome)
	}
	if !result.Stats.IsEmpty() {
		t.Errorf("failed stats fetch must yield an empty payload, got %+v", result.Stats)
	}
	if result.NewsOutcome != OutcomeOK || len(result.Articles) != 1 {
		t.Errorf("news stage must still run: %s, %d articles", result.NewsOutcome, len(result.Articles))
	}
	if len(sink.appends) != 1 {
		t.Errorf("persistence must still run, got %d appends", len(sink.appends))
	}
}

func TestEnrichEmptyStatsPayloadIsNoData(t *testing.T) {
	stats := &fakeStats{payload: mlb.StatsPayload{}}
	o := New(stats, &fakeNews{}, sentiment.NewAnalyzer(), &fakeSink{}, 10)

	result := o.Enrich(context.Background(), teamResolution(), news.Window{})
	if result.StatsOutcome != OutcomeNoData {
		t.Errorf("empty payload should be no_data, got %s", result.StatsOutcome)
	}
}

func TestEnrichLeagueSkipsStats(t *testing.T) {
	stats := &fakeStats{}
	newsClient := &fakeNews{}
	o := New(stats, newsClient, sentiment.NewAnalyzer(), &fakeSink{}, 10)

	resolution := resolve.Resolution{Found: true, Entity: resolve.League}
	result := o.Enrich(context.Background(), resolution, news.Window{})

	if stats.playerCalls != 0 || stats.teamCalls != 0 {
		t.Errorf("stats must never be fetched for the league: %+v", stats)
	}
	if result.StatsOutcome != OutcomeNoData {
		t.Errorf("league stats outcome = %s, want no_data", result.StatsOutcome)
	}
	if newsClient.gotQuery != "MLB" {
		t.Errorf("league news query = %q, want MLB", newsClient.gotQuery)
	}
}

func TestEnrichNewsFailureYieldsEmptyArticles(t *testing.T) {
	newsClient := &fakeNews{err: fmt.Errorf("news api down")}
	sink := &fakeSink{}
	o := New(&fakeStats{}, newsClient, sentiment.NewAnalyzer(), sink, 10)

	result := o.Enrich(context.Background(), teamResolution(), news.Window{})

	if result.NewsOutcome != OutcomeUpstreamFailure {
		t.Errorf("news outcome = %s, want upstream_failure", result.NewsOutcome)
	}
	if len(result.Articles) != 0 {
		t.Errorf("expected no articles, got %d", len(result.Articles))
	}
	// Persistence still runs as a no-op append.
	if len(sink.appends) != 1 {
		t.Errorf("expected the no-op append, got %d appends", len(sink.appends))
	}
}

func TestEnrichPersistenceFailureIsSwallowed(t *testing.T) {
	sink := &fakeSink{err: fmt.Errorf("disk full")}
	newsClient := &fakeNews{articles: []core.Article{{Title: "x", Description: "y"}}}
	o := New(&fakeStats{}, newsClient, sentiment.NewAnalyzer(), sink, 10)

	result := o.Enrich(context.Background(), teamResolution(), news.Window{})
	if len(result.Articles) != 1 {
		t.Errorf("pipeline must continue past a storage failure, got %+v", result)
	}
}

func TestPlayerResolutionHitsPlayerEndpoint(t *testing.T) {
	stats := &fakeStats{}
	o := New(stats, &fakeNews{}, sentiment.NewAnalyzer(), &fakeSink{}, 10)

	resolution := resolve.Resolution{
		Found:  true,
		Entity: core.Entity{ID: 592450, Name: "Aaron Judge", Kind: core.KindPlayer},
	}
	o.Enrich(context.Background(), resolution, news.Window{})

	if stats.playerCalls != 1 || stats.teamCalls != 0 {
		t.Errorf("player resolution must hit the player endpoint: %+v", stats)
	}
}
