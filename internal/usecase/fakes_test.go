package usecase

import (
	"context"
	"errors"
	"sync"

	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/ports"
)

type memoryLedger struct {
	mu     sync.Mutex
	posted map[domain.Task]bool
	err    error
}

func newMemoryLedger(tasks ...domain.Task) *memoryLedger {
	l := &memoryLedger{posted: map[domain.Task]bool{}}
	for _, t := range tasks {
		l.posted[t] = true
	}
	return l
}

func (l *memoryLedger) IsPosted(_ context.Context, task domain.Task) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	return l.posted[task], nil
}

func (l *memoryLedger) MarkPosted(_ context.Context, task domain.Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.posted[task] = true
	return nil
}

type stubSearcher struct {
	queries []string
	answer  string
}

func (s *stubSearcher) SearchContext(_ context.Context, query string) string {
	s.queries = append(s.queries, query)
	if s.answer != "" {
		return s.answer
	}
	return "- Forum: snippet"
}

type stubImages struct {
	url     string
	err     error
	queries []string
}

func (s *stubImages) FindImage(_ context.Context, query string) (string, error) {
	s.queries = append(s.queries, query)
	return s.url, s.err
}

type stubMedia struct {
	id     int
	err    error
	titles []string
}

func (s *stubMedia) UploadMedia(_ context.Context, _ string, title string) (int, error) {
	s.titles = append(s.titles, title)
	return s.id, s.err
}

type stubGenerator struct {
	draft    domain.ArticleDraft
	err      error
	requests []ports.GenerationRequest
}

func (s *stubGenerator) Generate(_ context.Context, req ports.GenerationRequest) (domain.ArticleDraft, error) {
	s.requests = append(s.requests, req)
	return s.draft, s.err
}

type stubPublisher struct {
	err     error
	drafts  []domain.ArticleDraft
	mediaID []int
}

func (s *stubPublisher) Publish(_ context.Context, draft domain.ArticleDraft, mediaID int) (domain.Published, error) {
	s.drafts = append(s.drafts, draft)
	s.mediaID = append(s.mediaID, mediaID)
	if s.err != nil {
		return domain.Published{}, s.err
	}
	return domain.Published{ID: 101, Link: "https://site/" + draft.Slug + "/", Status: domain.StatusPublish}, nil
}

type stubNotifier struct {
	messages []string
}

func (s *stubNotifier) Announce(_ context.Context, message string) error {
	s.messages = append(s.messages, message)
	return nil
}

type memoryHistory struct {
	records []domain.ArticleRecord
	err     error
}

func (h *memoryHistory) Records() []domain.ArticleRecord {
	return append([]domain.ArticleRecord(nil), h.records...)
}

func (h *memoryHistory) Add(draft domain.ArticleDraft, siteURL string) ([]domain.ArticleRecord, error) {
	if h.err != nil {
		return h.Records(), h.err
	}
	h.records = append(h.records, domain.ArticleRecord{
		Title:    draft.Title,
		Slug:     draft.Slug,
		URL:      siteURL + "/" + draft.Slug + "/",
		Tags:     draft.Tags,
		Category: draft.Category,
	})
	return h.Records(), nil
}

var errBoom = errors.New("boom")
