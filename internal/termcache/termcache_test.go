package termcache

import (
	"path/filepath"
	"testing"
)

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()

	if _, ok := c.Get("tags", "Ремонт"); ok {
		t.Fatal("empty cache must miss")
	}
	if err := c.Put("tags", "Ремонт", 42); err != nil {
		t.Fatalf("put: %v", err)
	}
	if id, ok := c.Get("tags", "  ремонт "); !ok || id != 42 {
		t.Fatalf("expected case-insensitive hit, got %d %v", id, ok)
	}
	if _, ok := c.Get("categories", "ремонт"); ok {
		t.Fatal("taxonomies must not share ids")
	}
	if err := c.Put("tags", "zero", 0); err != nil {
		t.Fatalf("put zero: %v", err)
	}
	if _, ok := c.Get("tags", "zero"); ok {
		t.Fatal("zero ids must not be cached")
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exerciseCache(t, NewMemory())
}

func TestBoltPersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache", "terms.db")
	c, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseCache(t, c)
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	if id, ok := reopened.Get("tags", "ремонт"); !ok || id != 42 {
		t.Fatalf("id lost after reopen: %d %v", id, ok)
	}
}

func TestOpenBoltRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := OpenBolt(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
