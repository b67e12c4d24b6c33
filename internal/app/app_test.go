package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ArticlesPublisher/internal/config"
	"ArticlesPublisher/internal/content/translit"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), config.Config{}, nil)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected config.ErrInvalid, got %v", err)
	}
}

func TestNewSlugBuilder(t *testing.T) {
	t.Parallel()

	table, err := NewSlugBuilder("table")
	if err != nil {
		t.Fatalf("NewSlugBuilder(table): %v", err)
	}
	if got := table.Generate("Ремонт квартир у Львові", 0); got != "remont-kvartyr-lvovi" {
		t.Fatalf("unexpected slug %q", got)
	}

	library, err := NewSlugBuilder("slug")
	if err != nil {
		t.Fatalf("NewSlugBuilder(slug): %v", err)
	}
	if got := library.Generate("Ремонт квартир у Львові", 0); got == "" || got == "ukrfix-article" {
		t.Fatalf("library strategy produced %q", got)
	}

	fallback, err := NewSlugBuilder("unknown")
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if fallback == nil || fallback.Generate("Київ", 0) != "kyyiv" {
		t.Fatal("unknown strategy must still yield a table-based builder")
	}
}

func TestSlugStrategiesDropStopWordsAndKeepCities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		strategy string
		heading  string
		want     string
	}{
		{strategy: config.DefaultTransliterator, heading: "Як знайти клієнтів на Ремонт квартир в Кракові", want: "znaity-kliientiv-remont-kvartyr-krakovi"},
		{strategy: config.DefaultTransliterator, heading: "Для оренди житла у Гданську", want: "orendy-zhytla-hdansku"},
		{strategy: translit.NameLibrary, heading: "Як знайти клієнтів на Ремонт квартир в Кракові", want: "znaiti-kliientiv-remont-kvartir-krakovi"},
		{strategy: translit.NameLibrary, heading: "Для оренди житла у Гданську", want: "orendi-zhitla-gdansku"},
	}

	for _, tc := range tests {
		builder, err := NewSlugBuilder(tc.strategy)
		if err != nil {
			t.Fatalf("NewSlugBuilder(%q): %v", tc.strategy, err)
		}
		got := builder.FromDraft("<h1>"+tc.heading+"</h1><p>текст</p>", "", 0)
		if got != tc.want {
			t.Fatalf("%s: FromDraft(%q) = %q, want %q", tc.strategy, tc.heading, got, tc.want)
		}
	}
}

func TestDefaultConfigUsesDefaultTransliterator(t *testing.T) {
	t.Setenv("ARTICLE_PUBLISHER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ARTICLE_PUBLISHER_DOTENV", filepath.Join(t.TempDir(), "missing.env"))

	if got := config.Load().Content.Transliterator; got != config.DefaultTransliterator {
		t.Fatalf("default transliterator = %q, want %q", got, config.DefaultTransliterator)
	}
}

func TestLimitsAndDelaysMapping(t *testing.T) {
	t.Parallel()

	limits := limitsFrom(config.ContentConfig{TitleLength: 50, SlugLength: 30, MaxLinks: 3})
	if limits.TitleLength != 50 || limits.SlugLength != 30 || limits.MaxLinks != 3 {
		t.Fatalf("unexpected limits %+v", limits)
	}

	delays := delaysFrom(config.SchedulerConfig{MinBetween: time.Minute, MaxBetween: 2 * time.Minute, Idle: time.Hour})
	if delays.MinBetween != time.Minute || delays.MaxBetween != 2*time.Minute || delays.Idle != time.Hour {
		t.Fatalf("unexpected delays %+v", delays)
	}
}
