package enrich

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dugout/internal/core"
	"dugout/internal/logger"
	"dugout/internal/mlb"
	"dugout/internal/news"
	"dugout/internal/resolve"
)

// Outcome distinguishes an empty result that is genuinely empty from
// one caused by an upstream failure, so callers can report "no data"
// and "fetch failed" differently.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeNoData          Outcome = "no_data"
	OutcomeUpstreamFailure Outcome = "upstream_failure"
)

// StatsClient fetches performance statistics by entity id.
type StatsClient interface {
	PlayerStats(ctx context.Context, playerID int) (mlb.StatsPayload, error)
	TeamStats(ctx context.Context, teamID, season int) (mlb.StatsPayload, error)
}

// NewsClient fetches recent coverage for a query within a window.
type NewsClient interface {
	Search(ctx context.Context, query string, window news.Window, maxResults int) ([]core.Article, error)
}

// Scorer attaches sentiment scores to fetched articles.
type Scorer interface {
	ScoreArticles(articles []core.Article) []core.Article
}

// ArticleSink persists scored articles.
type ArticleSink interface {
	AppendArticles(articles []core.Article) error
}

// Result is the combined enrichment for one resolved entity.
type Result struct {
	RunID        string
	Entity       core.Entity
	Stats        mlb.StatsPayload
	StatsOutcome Outcome
	Articles     []core.Article
	NewsOutcome  Outcome
	Window       news.Window
}

// Orchestrator drives statistics retrieval, news retrieval, sentiment
// scoring and persistence for a resolved entity. Every step is best
// effort: upstream and storage failures degrade the result, they
// never abort it.
type Orchestrator struct {
	stats       StatsClient
	news        NewsClient
	scorer      Scorer
	sink        ArticleSink
	maxArticles int
	now         func() time.Time
}

// New creates an enrichment orchestrator.
func New(stats StatsClient, newsClient NewsClient, scorer Scorer, sink ArticleSink, maxArticles int) *Orchestrator {
	return &Orchestrator{
		stats:       stats,
		news:        newsClient,
		scorer:      scorer,
		sink:        sink,
		maxArticles: maxArticles,
		now:         time.Now,
	}
}

// Enrich runs the pipeline for a successful resolution: stats, then
// news over the window, then scoring, then a best-effort append to
// the store (a no-op when no articles were fetched).
func (o *Orchestrator) Enrich(ctx context.Context, resolution resolve.Resolution, window news.Window) Result {
	result := Result{
		RunID:  uuid.NewString(),
		Entity: resolution.Entity,
		Window: window,
	}
	logger.Debug("starting enrichment",
		"run_id", result.RunID, "entity", result.Entity.Name, "kind", string(result.Entity.Kind))

	result.Stats, result.StatsOutcome = o.fetchStats(ctx, resolution.Entity)
	result.Articles, result.NewsOutcome = o.fetchNews(ctx, resolution.Entity, window)

	result.Articles = o.scorer.ScoreArticles(result.Articles)

	// Persistence always runs after scoring; a storage failure is
	// logged and the pipeline continues.
	if err := o.sink.AppendArticles(result.Articles); err != nil {
		logger.Error("failed to persist articles", err, "run_id", result.RunID)
	}

	logger.Info("enrichment finished",
		"run_id", result.RunID,
		"entity", result.Entity.Name,
		"stats", string(result.StatsOutcome),
		"articles", len(result.Articles))
	return result
}

// fetchStats retrieves stats keyed by entity id and kind. Stats are
// never fetched for the league sentinel.
func (o *Orchestrator) fetchStats(ctx context.Context, entity core.Entity) (mlb.StatsPayload, Outcome) {
	var (
		payload mlb.StatsPayload
		err     error
	)
	switch entity.Kind {
	case core.KindPlayer:
		payload, err = o.stats.PlayerStats(ctx, entity.ID)
	case core.KindTeam:
		payload, err = o.stats.TeamStats(ctx, entity.ID, o.now().Year())
	default:
		return mlb.StatsPayload{}, OutcomeNoData
	}

	if err != nil {
		logger.Warn("stats fetch failed", "entity", entity.Name, "error", err.Error())
		return mlb.StatsPayload{}, OutcomeUpstreamFailure
	}
	if payload.IsEmpty() {
		return payload, OutcomeNoData
	}
	return payload, OutcomeOK
}

func (o *Orchestrator) fetchNews(ctx context.Context, entity core.Entity, window news.Window) ([]core.Article, Outcome) {
	articles, err := o.news.Search(ctx, entity.Name, window, o.maxArticles)
	if err != nil {
		logger.Warn("news fetch failed", "entity", entity.Name, "error", err.Error())
		return nil, OutcomeUpstreamFailure
	}
	if len(articles) == 0 {
		return nil, OutcomeNoData
	}
	return articles, OutcomeOK
}
