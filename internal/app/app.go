package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ArticlesPublisher/internal/config"
	"ArticlesPublisher/internal/content/slug"
	"ArticlesPublisher/internal/content/translit"
	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/history"
	"ArticlesPublisher/internal/infrastructure/images"
	"ArticlesPublisher/internal/infrastructure/llm"
	"ArticlesPublisher/internal/infrastructure/scheduler"
	"ArticlesPublisher/internal/infrastructure/search"
	"ArticlesPublisher/internal/infrastructure/storage"
	"ArticlesPublisher/internal/infrastructure/telegram"
	"ArticlesPublisher/internal/infrastructure/wordpress"
	"ArticlesPublisher/internal/logging"
	"ArticlesPublisher/internal/ports"
	"ArticlesPublisher/internal/termcache"
	"ArticlesPublisher/internal/usecase"
)

const stopTimeout = 30 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	driver    *scheduler.JitterScheduler
	scheduler *usecase.Scheduler
	closers   []io.Closer
}

// New validates the configuration and builds every adapter.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	slugs, err := NewSlugBuilder(cfg.Content.Transliterator)
	if err != nil {
		baseLogger.Warn("unknown transliterator, using table", "name", cfg.Content.Transliterator, "error", err)
	}

	store, err := history.Open(cfg.Storage.HistoryPath)
	if err != nil {
		baseLogger.Warn("history loaded as empty", "path", store.Path(), "error", err)
	} else {
		baseLogger.Info("history loaded", "path", store.Path(), "records", len(store.Records()))
	}

	ledger, err := storage.OpenSQLiteLedger(ctx, cfg.Storage.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	a.closers = append(a.closers, ledger)
	if posted, err := ledger.Count(ctx); err != nil {
		baseLogger.Warn("cannot count posted combinations", "error", err)
	} else {
		baseLogger.Info("ledger opened", "path", cfg.Storage.LedgerPath, "posted", posted)
	}

	terms := a.openTermCache(cfg.Storage.TermCachePath)

	generator, err := llm.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build generator: %w", err)
	}
	a.closers = append(a.closers, generator)

	wp := wordpress.NewClient(wordpress.Config{
		URL:         cfg.WordPress.URL,
		Username:    cfg.WordPress.Username,
		AppPassword: cfg.WordPress.AppPassword,
		Status:      domain.PublishStatus(cfg.WordPress.PostStatus),
	}, terms, baseLogger.With("component", "wordpress"))

	var finder ports.ImageFinder
	if cfg.Pexels.APIKey != "" {
		finder = images.NewPexelsFinder(cfg.Pexels.APIKey, cfg.Pexels.Endpoint)
	} else {
		baseLogger.Info("pexels key missing, articles go without featured images")
	}

	var notifier ports.Notifier
	tg := telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	if tg.Configured() {
		notifier = tg
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Selector:     usecase.NewTaskSelector(cfg.Locations, cfg.CategoryNames(), ledger, nil),
		Searcher:     search.NewGoogleSearcher(cfg.Google.APIKey, cfg.Google.CSEID, baseLogger.With("component", "search"), search.WithEndpoint(cfg.Google.Endpoint)),
		Images:       finder,
		Media:        wp,
		Generator:    generator,
		Publisher:    wp,
		Ledger:       ledger,
		History:      store,
		Notifier:     notifier,
		Slugs:        slugs,
		ImageQueries: cfg.Categories,
		SiteURL:      wp.SiteURL(),
		Limits:       limitsFrom(cfg.Content),
		Logger:       baseLogger.With("component", "pipeline"),
	})

	a.driver = scheduler.NewJitterScheduler()
	a.scheduler = usecase.NewScheduler(a.driver, a.pipeline, delaysFrom(cfg.Scheduler), baseLogger.With("component", "scheduler"))

	return a, nil
}

// NewSlugBuilder builds the slug builder for a transliterator strategy name.
// Unknown names still return a table-based builder together with the error.
func NewSlugBuilder(name string) (*slug.Builder, error) {
	t, err := translit.NewRegistry().Build(name)
	return slug.NewBuilder(t), err
}

func (a *Application) openTermCache(path string) termcache.Cache {
	if path == "" {
		return termcache.NewMemory()
	}
	cache, err := termcache.OpenBolt(path)
	if err != nil {
		a.logger.Warn("term cache unavailable, using memory", "path", path, "error", err)
		return termcache.NewMemory()
	}
	a.closers = append(a.closers, cache)
	return cache
}

func limitsFrom(c config.ContentConfig) usecase.Limits {
	return usecase.Limits{
		TitleLength:  c.TitleLength,
		MetaLength:   c.MetaLength,
		SlugLength:   c.SlugLength,
		MaxLinks:     c.MaxLinks,
		RecentTitles: c.RecentTitles,
	}
}

func delaysFrom(c config.SchedulerConfig) usecase.Delays {
	return usecase.Delays{
		MinBetween:     c.MinBetween,
		MaxBetween:     c.MaxBetween,
		Idle:           c.Idle,
		Error:          c.Error,
		PublishFailure: c.PublishFailure,
		Duplicate:      c.Duplicate,
	}
}

// RunOnce produces and publishes a single article.
func (a *Application) RunOnce(ctx context.Context) (usecase.Result, error) {
	return a.pipeline.RunOnce(ctx)
}

// Run drives the publishing loop until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("bot started", "site", a.cfg.WordPress.URL, "status", a.cfg.WordPress.PostStatus)
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-a.driver.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := a.scheduler.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("bot stopped")
	return nil
}

// Close releases files and clients opened by New.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
