package ports

import (
	"context"
	"time"

	"ArticlesPublisher/internal/domain"
)

// NoSearchContext is what a ContextSearcher returns when it found nothing.
const NoSearchContext = "Інформація не знайдена."

// ContextSearcher collects short search snippets used as generation context.
type ContextSearcher interface {
	SearchContext(ctx context.Context, query string) string
}

// ImageFinder looks up a stock image URL for a query.
type ImageFinder interface {
	FindImage(ctx context.Context, query string) (string, error)
}

// MediaUploader stores an image on the publishing platform and returns its media id.
type MediaUploader interface {
	UploadMedia(ctx context.Context, imageURL, title string) (int, error)
}

// GenerationRequest carries everything the generator needs for one article.
type GenerationRequest struct {
	Task         domain.Task
	Context      string
	RecentTitles []string
}

// Generator asks an LLM for a structured article draft.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (domain.ArticleDraft, error)
}

// Publisher posts the final draft to the content platform.
type Publisher interface {
	Publish(ctx context.Context, draft domain.ArticleDraft, featuredMediaID int) (domain.Published, error)
}

// TaskLedger remembers which combinations were already posted.
type TaskLedger interface {
	IsPosted(ctx context.Context, task domain.Task) (bool, error)
	MarkPosted(ctx context.Context, task domain.Task) error
}

// HistoryStore is the append-only record of published articles.
type HistoryStore interface {
	Records() []domain.ArticleRecord
	Add(draft domain.ArticleDraft, siteURL string) ([]domain.ArticleRecord, error)
}

// Notifier announces published articles to an outbound channel.
type Notifier interface {
	Announce(ctx context.Context, message string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time) time.Duration) error
	Stop(ctx context.Context) error
}
