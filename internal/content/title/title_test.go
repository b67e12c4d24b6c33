package title

import (
	"testing"
	"unicode/utf8"
)

func TestOptimizeStripsLeadingStopWords(t *testing.T) {
	t.Parallel()

	res := Optimize("і найкращий сервіс", 60)
	if res.Chosen != "Найкращий Сервіс" {
		t.Fatalf("unexpected chosen title: %q", res.Chosen)
	}
	if res.SentenceCase != "Найкращий сервіс" {
		t.Fatalf("unexpected sentence case: %q", res.SentenceCase)
	}

	res = Optimize("і найкращий і сервіс", 60)
	if res.TitleCase != "Найкращий і Сервіс" {
		t.Fatalf("mid-sentence stop-word should stay lower-case: %q", res.TitleCase)
	}
	if res.SentenceCase != "Найкращий і сервіс" {
		t.Fatalf("mid-sentence stop-word should survive: %q", res.SentenceCase)
	}
}

func TestOptimizeCleansPunctuation(t *testing.T) {
	t.Parallel()

	res := Optimize("  — Ремонт   квартир У Варшаві: поради. ", 0)
	if res.TitleCase != "Ремонт Квартир у Варшаві: Поради" {
		t.Fatalf("unexpected title case: %q", res.TitleCase)
	}
	if res.SentenceCase != "Ремонт квартир У Варшаві: поради" {
		t.Fatalf("unexpected sentence case: %q", res.SentenceCase)
	}
}

func TestOptimizeTruncates(t *testing.T) {
	t.Parallel()

	res := Optimize("Як знайти клієнтів на ремонт квартир в Кракові та інших містах Польщі", 30)
	if res.TitleCase != "Знайти Клієнтів на Ремонт..." {
		t.Fatalf("unexpected title case: %q", res.TitleCase)
	}
	if res.SentenceCase != "Знайти клієнтів на ремонт..." {
		t.Fatalf("unexpected sentence case: %q", res.SentenceCase)
	}
	if res.Chosen != res.TitleCase {
		t.Fatalf("title case should be preferred, got %q", res.Chosen)
	}
}

func TestOptimizeDegenerateInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "...", "і та"} {
		res := Optimize(in, 60)
		if res.Chosen != DefaultTitle || res.TitleCase != DefaultTitle || res.SentenceCase != DefaultTitle {
			t.Fatalf("Optimize(%q) = %+v, want default title", in, res)
		}
	}
}

func TestTruncateEllipsisEdgeCase(t *testing.T) {
	t.Parallel()

	if got := truncate("ab cdefgh", 4); got != "ab.." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("abcdefgh", 5); got != "abcde" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short text should pass through: %q", got)
	}
}

func TestOptimizeRespectsBudget(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Як знайти покупців на Легкові автомобілі в м. Варшава (Польща)",
		"Оренда нерухомості: як знайти орендарів у Празі без посередників і зайвих витрат",
		"Ремонт",
		"Надзвичайнодовгесловоякенемаєпробілівувесьцейзаголовокдужедовгий",
	}

	for _, in := range inputs {
		for _, limit := range []int{3, 10, 25, 60} {
			res := Optimize(in, limit)
			if n := utf8.RuneCountInString(res.TitleCase); n > limit {
				t.Fatalf("title case %q exceeds %d", res.TitleCase, limit)
			}
			if n := utf8.RuneCountInString(res.SentenceCase); n > limit {
				t.Fatalf("sentence case %q exceeds %d", res.SentenceCase, limit)
			}
		}
	}
}
