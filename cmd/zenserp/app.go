package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbuilder587/zenserp-go/internal/cache/file"
	"github.com/kitbuilder587/zenserp-go/internal/config"
	"github.com/kitbuilder587/zenserp-go/internal/domain"
	"github.com/kitbuilder587/zenserp-go/internal/metrics"
	"github.com/kitbuilder587/zenserp-go/internal/ratelimit"
	"github.com/kitbuilder587/zenserp-go/internal/repository"
	"github.com/kitbuilder587/zenserp-go/internal/repository/postgres"
	"github.com/kitbuilder587/zenserp-go/internal/search/zenserp"
	"github.com/kitbuilder587/zenserp-go/internal/service"
)

const dbConnectTimeout = 5 * time.Second

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	db      *postgres.DB

	search  service.SearchService
	catalog service.CatalogService
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg := config.FromEnv()
	if opts.apiKey != "" {
		cfg.Zenserp.APIKey = opts.apiKey
	}
	cfg.Log.Debug = opts.debug
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	client, err := zenserp.New(zenserp.Config{
		APIKey:  cfg.Zenserp.APIKey,
		BaseURL: cfg.Zenserp.BaseURL,
		Timeout: cfg.Zenserp.Timeout,
	}, logger, zenserp.WithDebugLogging(opts.debug))
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	var history repository.HistoryRepository
	if cfg.Database.URL != "" {
		if db, err := connectHistory(ctx, cfg.Database.URL); err != nil {
			// поиск работает и без истории
			logger.Warn("search history unavailable", zap.Error(err))
		} else {
			a.db = db
			history = postgres.NewHistoryRepo(db)
		}
	}

	a.search = service.NewSearchService(service.SearchServiceDeps{
		Client:        client,
		APIKey:        cfg.Zenserp.APIKey,
		SharedLimiter: sharedLimiter(cfg, history, logger),
		History:       history,
		Metrics:       a.metrics,
		Logger:        logger,
	})

	catalogDeps := service.CatalogServiceDeps{
		Client:  client,
		TTL:     cfg.Cache.TTL,
		Metrics: a.metrics,
		Logger:  logger,
	}
	if cfg.Cache.Dir != "" {
		if store, err := file.New(filepath.Join(cfg.Cache.Dir, "listings")); err != nil {
			logger.Warn("listing cache unavailable", zap.Error(err))
		} else {
			catalogDeps.Store = store
		}
	}
	a.catalog = service.NewCatalogService(catalogDeps)

	return a, nil
}

// sharedLimiter: каждый запуск CLI - отдельный процесс, поэтому лимит считается по
// истории поисков в базе, а без базы - по журналу в каталоге кеша.
func sharedLimiter(cfg *config.Config, history repository.HistoryRepository, logger *zap.Logger) *ratelimit.Shared {
	limitCfg := ratelimit.Config{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute}

	if history != nil {
		return ratelimit.NewShared(history, limitCfg)
	}
	if cfg.Cache.Dir == "" {
		return nil
	}

	journal, err := ratelimit.NewFileJournal(filepath.Join(cfg.Cache.Dir, "ratelimit.json"), time.Minute)
	if err != nil {
		logger.Warn("rate limit journal unavailable", zap.Error(err))
		return nil
	}
	return ratelimit.NewShared(journal, limitCfg)
}

func connectHistory(ctx context.Context, url string) (*postgres.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()

	db, err := postgres.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *app) Close() {
	if path := a.cfg.Metrics.TextfilePath; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.logger.Warn("failed to write metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}
	a.catalog.Close()
	if a.db != nil {
		a.db.Close()
	}
	_ = a.logger.Sync()
}

// runWithApp поднимает зависимости, выполняет fn и печатает результат как JSON.
func runWithApp(opts *rootOptions, fn func(ctx context.Context, a *app) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, opts)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := fn(ctx, a)
		if err != nil {
			a.logger.Debug("command failed",
				zap.String("command", cmd.Name()),
				zap.String("kind", domain.ErrorKind(err)),
				zap.Error(err),
			)
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
