package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"ArticlesPublisher/internal/content/assemble"
	"ArticlesPublisher/internal/content/meta"
	"ArticlesPublisher/internal/content/slug"
	"ArticlesPublisher/internal/content/title"
	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/history"
	"ArticlesPublisher/internal/ports"
)

var (
	// ErrDuplicate means the generated title matches an already published article.
	ErrDuplicate = errors.New("duplicate article title")
	// ErrPublish means the platform rejected or failed the post.
	ErrPublish = errors.New("publish failed")
)

// Limits bounds the generated identity fields.
type Limits struct {
	TitleLength  int
	MetaLength   int
	SlugLength   int
	MaxLinks     int
	RecentTitles int
}

// DefaultLimits mirrors the package defaults of the content helpers.
func DefaultLimits() Limits {
	return Limits{
		TitleLength:  title.DefaultMaxLength,
		MetaLength:   meta.DefaultMaxLength,
		SlugLength:   slug.DefaultMaxLength,
		MaxLinks:     history.DefaultMaxLinks,
		RecentTitles: history.DefaultRecentTitles,
	}
}

// PipelineDeps wires all driven adapters into the publishing pipeline.
type PipelineDeps struct {
	Selector  *TaskSelector
	Searcher  ports.ContextSearcher
	Images    ports.ImageFinder
	Media     ports.MediaUploader
	Generator ports.Generator
	Publisher ports.Publisher
	Ledger    ports.TaskLedger
	History   ports.HistoryStore
	Notifier  ports.Notifier
	Slugs     *slug.Builder

	// ImageQueries maps a category to its stock-photo search query.
	ImageQueries map[string]string
	SiteURL      string
	Limits       Limits
	Logger       *slog.Logger
}

// Pipeline produces and publishes one article per run.
type Pipeline struct {
	selector     *TaskSelector
	searcher     ports.ContextSearcher
	images       ports.ImageFinder
	media        ports.MediaUploader
	generator    ports.Generator
	publisher    ports.Publisher
	ledger       ports.TaskLedger
	history      ports.HistoryStore
	notifier     ports.Notifier
	slugs        *slug.Builder
	imageQueries map[string]string
	siteURL      string
	limits       Limits
	logger       *slog.Logger
}

// Result describes a completed run.
type Result struct {
	Task      domain.Task
	Draft     domain.ArticleDraft
	Published domain.Published
	Links     []domain.Link
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	slugs := deps.Slugs
	if slugs == nil {
		slugs = slug.NewBuilder(nil)
	}
	limits := deps.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}

	return &Pipeline{
		selector:     deps.Selector,
		searcher:     deps.Searcher,
		images:       deps.Images,
		media:        deps.Media,
		generator:    deps.Generator,
		publisher:    deps.Publisher,
		ledger:       deps.Ledger,
		history:      deps.History,
		notifier:     deps.Notifier,
		slugs:        slugs,
		imageQueries: deps.ImageQueries,
		siteURL:      deps.SiteURL,
		limits:       limits,
		logger:       logger,
	}
}

// RunOnce selects a task and carries it through to a published article.
// Returned errors wrap ErrNoTask, ErrDuplicate or ErrPublish where they apply.
func (p *Pipeline) RunOnce(ctx context.Context) (Result, error) {
	if p.selector == nil || p.generator == nil || p.publisher == nil {
		return Result{}, errors.New("pipeline misconfigured")
	}

	task, err := p.selector.Select(ctx)
	if err != nil {
		return Result{}, err
	}
	logger := p.logger.With("cycle", uuid.NewString(), "country", task.Country, "city", task.City, "category", task.Category)
	logger.Info("working on task")

	return p.Run(ctx, task, logger)
}

// Run processes a given task.
func (p *Pipeline) Run(ctx context.Context, task domain.Task, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = p.logger
	}
	result := Result{Task: task}

	searchContext := ""
	if p.searcher != nil {
		searchContext = p.searcher.SearchContext(ctx, SearchQuery(task))
	}
	if searchContext == ports.NoSearchContext {
		logger.Info("no search context found")
		searchContext = ""
	}

	mediaID := p.featuredImage(ctx, task, logger)

	var records []domain.ArticleRecord
	if p.history != nil {
		records = p.history.Records()
	}

	logger.Info("generating article")
	draft, err := p.generator.Generate(ctx, ports.GenerationRequest{
		Task:         task,
		Context:      searchContext,
		RecentTitles: history.RecentTitles(records, p.limits.RecentTitles),
	})
	if err != nil {
		return result, fmt.Errorf("generate article: %w", err)
	}

	if err := p.Enrich(&draft, task); err != nil {
		return result, err
	}
	result.Draft = draft

	if history.IsDuplicate(draft.Title, records) {
		logger.Warn("duplicate title detected, skipping", "title", draft.Title)
		return result, fmt.Errorf("%w: %q", ErrDuplicate, draft.Title)
	}

	result.Links = history.FindInternalLinks(draft, records, p.limits.MaxLinks)
	draft.HTMLContent = assemble.InjectInternalLinks(assemble.EnsureCTA(draft.HTMLContent), result.Links)
	result.Draft = draft

	logger.Info("publishing", "slug", draft.Slug, "links", len(result.Links))
	published, err := p.publisher.Publish(ctx, draft, mediaID)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrPublish, err)
	}
	result.Published = published
	logger.Info("article published", "id", published.ID, "status", published.Status, "link", published.Link)

	var markErr error
	if p.ledger != nil {
		if markErr = p.ledger.MarkPosted(ctx, task); markErr != nil {
			markErr = fmt.Errorf("mark posted: %w", markErr)
		}
	}

	if p.history != nil {
		if _, err := p.history.Add(draft, p.siteURL); err != nil {
			logger.Error("history save failed", "slug", draft.Slug, "error", err)
		}
	}

	p.announce(ctx, draft, published, logger)

	return result, markErr
}

// Enrich derives the identity fields of a generated draft in place.
func (p *Pipeline) Enrich(draft *domain.ArticleDraft, task domain.Task) error {
	body, err := assemble.RenderBody(draft.HTMLContent)
	if err != nil {
		return fmt.Errorf("render body: %w", err)
	}
	draft.HTMLContent = body

	if draft.Category == "" {
		draft.Category = task.Category
	}
	if len(draft.Tags) == 0 {
		draft.Tags = defaultTags(task)
	}

	titles := title.Optimize(draft.Title, p.limits.TitleLength)
	draft.Title = titles.Chosen
	draft.TitleCase = titles.TitleCase
	draft.SentenceCase = titles.SentenceCase

	draft.Slug = p.slugs.FromDraft(draft.HTMLContent, draft.Title, p.limits.SlugLength)
	draft.MetaDescription = meta.Normalize(draft.MetaDescription, draft.HTMLContent, p.limits.MetaLength)
	return nil
}

func (p *Pipeline) featuredImage(ctx context.Context, task domain.Task, logger *slog.Logger) int {
	if p.images == nil || p.media == nil {
		return 0
	}

	query := p.imageQueries[task.Category]
	if query == "" {
		query = task.Category
	}
	imageURL, err := p.images.FindImage(ctx, query)
	if err != nil {
		logger.Warn("image search failed", "query", query, "error", err)
		return 0
	}

	logger.Info("image found, uploading")
	id, err := p.media.UploadMedia(ctx, imageURL, task.Category+" "+task.City)
	if err != nil {
		logger.Warn("image upload failed", "error", err)
		return 0
	}
	return id
}

func (p *Pipeline) announce(ctx context.Context, draft domain.ArticleDraft, published domain.Published, logger *slog.Logger) {
	if p.notifier == nil {
		return
	}
	link := published.Link
	if link == "" {
		link = history.RecordURL(p.siteURL, draft.Slug)
	}
	if err := p.notifier.Announce(ctx, buildAnnouncement(draft, link, published.Status)); err != nil {
		logger.Warn("announce failed", "error", err)
	}
}

// SearchQuery is the search phrase used to collect context for a task.
func SearchQuery(task domain.Task) string {
	return fmt.Sprintf("оголошення %s %s %s форуми", task.Category, task.City, task.Country)
}

func defaultTags(task domain.Task) []string {
	var tags []string
	for _, t := range []string{task.Category, task.City, task.Country} {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func buildAnnouncement(draft domain.ArticleDraft, link string, status domain.PublishStatus) string {
	prefix := "Нова стаття"
	if status == domain.StatusDraft || status == domain.StatusPending {
		prefix = "Чернетка"
	}
	return fmt.Sprintf("%s: %s\n%s", prefix, draft.Title, link)
}
