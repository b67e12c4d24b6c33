// Package history keeps the durable list of published articles and answers
// duplicate and related-article questions against it.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/ports"
)

// DefaultPath is where the history lives unless configured otherwise.
const DefaultPath = "data/published_articles.json"

// ErrCorrupt marks a history file that could not be decoded; the store then
// starts empty.
var ErrCorrupt = errors.New("history file is corrupt")

// Store is an append-only record list persisted as a JSON array. Appends are
// serialized; readers get snapshots.
type Store struct {
	path string

	mu      sync.Mutex
	records []domain.ArticleRecord
}

var _ ports.HistoryStore = (*Store)(nil)

// Open loads the history once. A missing file is an empty history. An
// unreadable or corrupt file also yields a usable empty store, together with
// an error the caller may log.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read history %s: %w", path, err)
	}

	records, err := decode(raw)
	if err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	s.records = records
	return s, nil
}

func decode(raw []byte) ([]domain.ArticleRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, errors.New("payload is not a list")
	}

	var records []domain.ArticleRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Records returns a snapshot of the full history, oldest first.
func (s *Store) Records() []domain.ArticleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.records)
}

// Add appends the draft as a record and rewrites the file. If a record with
// the same slug already exists nothing changes and the current records are
// returned. On a failed write the in-memory list is left as it was.
func (s *Store) Add(draft domain.ArticleDraft, siteURL string) ([]domain.ArticleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.Slug == draft.Slug {
			return cloneRecords(s.records), nil
		}
	}

	record := domain.ArticleRecord{
		Title:    draft.Title,
		Slug:     draft.Slug,
		URL:      RecordURL(siteURL, draft.Slug),
		Tags:     append([]string{}, draft.Tags...),
		Category: draft.Category,
	}

	next := append(cloneRecords(s.records), record)
	if err := s.save(next); err != nil {
		return cloneRecords(s.records), err
	}
	s.records = next
	return cloneRecords(s.records), nil
}

// RecordURL resolves the public address of a slug under siteURL.
func RecordURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + "/" + strings.Trim(slug, "/") + "/"
}

func (s *Store) save(records []domain.ArticleRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

func cloneRecords(records []domain.ArticleRecord) []domain.ArticleRecord {
	out := make([]domain.ArticleRecord, len(records))
	for i, rec := range records {
		rec.Tags = append([]string{}, rec.Tags...)
		out[i] = rec
	}
	return out
}
