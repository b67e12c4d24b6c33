package domain

// ArticleDraft is produced by generation and enriched in place before publishing.
type ArticleDraft struct {
	Title           string
	HTMLContent     string
	MetaDescription string
	Slug            string
	Tags            []string
	Category        string

	// Case variants computed by the title optimizer; empty until optimized.
	TitleCase    string
	SentenceCase string
}

// ArticleRecord is the durable residue of a published article.
type ArticleRecord struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// Link is a cross-link candidate picked from history.
type Link struct {
	Title string
	URL   string
}

// Task is a single (country, city, category) production unit.
type Task struct {
	Country  string
	City     string
	Category string
}

// PublishStatus mirrors WordPress post statuses.
type PublishStatus string

const (
	StatusPublish PublishStatus = "publish"
	StatusDraft   PublishStatus = "draft"
	StatusPending PublishStatus = "pending"
)

// Published describes a post accepted by the publishing platform.
type Published struct {
	ID     int
	Link   string
	Status PublishStatus
}
