package history

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ArticlesPublisher/internal/domain"
)

func newDraft(slug string) domain.ArticleDraft {
	return domain.ArticleDraft{
		Title:    "Ремонт квартир у Варшаві",
		Slug:     slug,
		Tags:     []string{"ремонт", "варшава"},
		Category: "Послуги",
	}
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "published_articles.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(store.Records()) != 0 {
		t.Fatalf("expected empty history")
	}
}

func TestOpenCorruptPayloads(t *testing.T) {
	t.Parallel()

	payloads := map[string]string{
		"object":    `{"title": "x"}`,
		"truncated": `[{"title": "x"`,
		"garbage":   `not json at all`,
		"number":    `42`,
	}

	for name, payload := range payloads {
		name, payload := name, payload
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "history.json")
			if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			store, err := Open(path)
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
			if store == nil || len(store.Records()) != 0 {
				t.Fatal("corrupt history should load as empty")
			}
		})
	}
}

func TestOpenToleratesMissingFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(`[{"title": "Old", "slug": "old"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	records := store.Records()
	if len(records) != 1 || records[0].URL != "" || len(records[0].Tags) != 0 || records[0].Category != "" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestAddPersistsAndReloads(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "published_articles.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	records, err := store.Add(newDraft("remont-kvartyr-u-varshavi"), "https://x/")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].URL != "https://x/remont-kvartyr-u-varshavi/" {
		t.Fatalf("unexpected url: %s", records[0].URL)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "Ремонт квартир у Варшаві") {
		t.Fatalf("history should be stored as readable UTF-8: %s", raw)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Records(), records) {
		t.Fatalf("reloaded records differ: %+v vs %+v", reloaded.Records(), records)
	}
}

func TestAddIsIdempotentPerSlug(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	first, err := store.Add(newDraft("same-slug"), "https://x")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	dup := newDraft("same-slug")
	dup.Title = "Зовсім інший заголовок"
	second, err := store.Add(dup, "https://x")
	if err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("duplicate slug changed records: %+v", second)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("duplicate slug rewrote the file")
	}
}

func TestRecordsIsSnapshot(t *testing.T) {
	t.Parallel()

	store, err := Open(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Add(newDraft("a"), "https://x"); err != nil {
		t.Fatalf("add: %v", err)
	}

	snapshot := store.Records()
	snapshot[0].Tags[0] = "mutated"
	snapshot[0].Title = "mutated"

	if got := store.Records()[0]; got.Title == "mutated" || got.Tags[0] == "mutated" {
		t.Fatalf("store leaked internal state: %+v", got)
	}
}

func TestAddFailureKeepsMemoryUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	// The parent "directory" is a regular file, so the write must fail.
	store, _ := Open(filepath.Join(blocker, "history.json"))

	if _, err := store.Add(newDraft("a"), "https://x"); err == nil {
		t.Fatal("expected write error")
	}
	if len(store.Records()) != 0 {
		t.Fatal("failed append must not stay in memory")
	}
}

func TestRecordURL(t *testing.T) {
	t.Parallel()

	if got := RecordURL("https://ukrfix.com///", "/slug/"); got != "https://ukrfix.com/slug/" {
		t.Fatalf("unexpected url: %s", got)
	}
}
