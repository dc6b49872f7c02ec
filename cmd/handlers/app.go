package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"dugout/internal/catalog"
	"dugout/internal/config"
	"dugout/internal/enrich"
	"dugout/internal/logger"
	"dugout/internal/mlb"
	"dugout/internal/news"
	"dugout/internal/render"
	"dugout/internal/resolve"
	"dugout/internal/sentiment"
	"dugout/internal/store"
)

// app wires the configured components together for the command layer.
type app struct {
	cfg      *config.Config
	mlb      *mlb.Client
	news     *news.Client
	analyzer *sentiment.Analyzer
	store    *store.Store
	catalog  *catalog.Manager
}

func newApp() (*app, error) {
	cfg := config.Get()
	if cfg.App.Debug {
		logger.SetDebug()
	}

	articleStore, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize article store: %w", err)
	}

	mlbClient := mlb.NewClient(cfg.MLB.BaseURL, config.Duration(cfg.MLB.Timeout, 30*time.Second))
	newsClient := news.NewClient(
		cfg.News.BaseURL,
		cfg.News.APIKey,
		config.Duration(cfg.News.Timeout, 30*time.Second),
		config.Duration(cfg.News.RateLimit, time.Second),
	)

	catalogPath := cfg.Catalog.File
	if !filepath.IsAbs(catalogPath) && filepath.Dir(catalogPath) == "." {
		catalogPath = filepath.Join(cfg.App.DataDir, catalogPath)
	}
	manager := catalog.NewManager(catalogPath, mlbClient, catalog.Policy{Cutoff: cfg.Catalog.CutoffDate()})

	return &app{
		cfg:      cfg,
		mlb:      mlbClient,
		news:     newsClient,
		analyzer: sentiment.NewAnalyzer(),
		store:    articleStore,
		catalog:  manager,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logger.Error("Failed to close article store", err)
	}
}

func (a *app) orchestrator() *enrich.Orchestrator {
	return enrich.New(a.mlb, a.news, a.analyzer, a.store, a.cfg.News.MaxResults)
}

// enrichAndRender runs the full pipeline for a resolution and returns
// the rendered result.
func (a *app) enrichAndRender(ctx context.Context, resolution resolve.Resolution, window news.Window) string {
	result := a.orchestrator().Enrich(ctx, resolution, window)
	return render.Result(result)
}

// window builds the news date window from flag overrides, defaulting
// to the first day of the current month through today.
func newsWindow(fromFlag, toFlag string) (news.Window, error) {
	window := news.CurrentMonthWindow(time.Now())
	if fromFlag != "" {
		from, err := time.Parse("2006-01-02", fromFlag)
		if err != nil {
			return news.Window{}, fmt.Errorf("invalid --from date %q: %w", fromFlag, err)
		}
		window.From = from
	}
	if toFlag != "" {
		to, err := time.Parse("2006-01-02", toFlag)
		if err != nil {
			return news.Window{}, fmt.Errorf("invalid --to date %q: %w", toFlag, err)
		}
		window.To = to
	}
	return window, nil
}

func parseMode(value string) (resolve.Mode, error) {
	switch strings.ToLower(value) {
	case "exact":
		return resolve.ModeExact, nil
	case "substring":
		return resolve.ModeSubstring, nil
	default:
		return "", fmt.Errorf("invalid --mode %q (want exact or substring)", value)
	}
}
