package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestSlugCommand(t *testing.T) {
	t.Parallel()

	got := execute(t, "slug", "--translit", "table", "Як знайти клієнтів на Ремонт квартир в Кракові")
	if strings.TrimSpace(got) != "znaity-kliientiv-remont-kvartyr-krakovi" {
		t.Fatalf("unexpected slug output %q", got)
	}

	got = execute(t, "slug", "--translit", "table", "--max", "10", "Ремонт", "квартир")
	if strings.TrimSpace(got) != "remont-kva" {
		t.Fatalf("unexpected truncated slug %q", got)
	}
}

func TestSlugCommandDefaultStrategy(t *testing.T) {
	t.Parallel()

	got := execute(t, "slug", "Оренда нерухомості у Гданську")
	if strings.TrimSpace(got) != "orenda-nerukhomosti-hdansku" {
		t.Fatalf("unexpected default slug %q", got)
	}
}

func TestTitleCommand(t *testing.T) {
	t.Parallel()

	got := execute(t, "title", "як знайти клієнтів на ремонт квартир")
	if !strings.Contains(got, "chosen:        Знайти Клієнтів на Ремонт Квартир\n") {
		t.Fatalf("unexpected title output %q", got)
	}
}

func TestSlugCommandRequiresText(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"slug"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected argument error")
	}
}
