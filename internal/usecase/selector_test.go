package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"ArticlesPublisher/internal/domain"
)

func TestSelectSkipsPostedCombinations(t *testing.T) {
	t.Parallel()

	locations := map[string][]string{
		"Польща": {"Варшава", "Краків"},
		"Чехія":  {"Прага"},
	}
	categories := []string{"Туризм", "Ремонт авто"}

	var posted []domain.Task
	remaining := domain.Task{Country: "Чехія", City: "Прага", Category: "Ремонт авто"}
	for country, cities := range locations {
		for _, city := range cities {
			for _, category := range categories {
				task := domain.Task{Country: country, City: city, Category: category}
				if task != remaining {
					posted = append(posted, task)
				}
			}
		}
	}

	s := NewTaskSelector(locations, categories, newMemoryLedger(posted...), rand.New(rand.NewPCG(7, 7)))
	if s.Combinations() != 6 {
		t.Fatalf("expected 6 combinations, got %d", s.Combinations())
	}

	got, err := s.Select(context.Background())
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != remaining {
		t.Fatalf("expected %+v, got %+v", remaining, got)
	}
}

func TestSelectGivesUpWhenEverythingPosted(t *testing.T) {
	t.Parallel()

	task := domain.Task{Country: "Польща", City: "Варшава", Category: "Туризм"}
	s := NewTaskSelector(map[string][]string{"Польща": {"Варшава"}}, []string{"Туризм"}, newMemoryLedger(task), nil)

	_, err := s.Select(context.Background())
	if !errors.Is(err, ErrNoTask) {
		t.Fatalf("expected ErrNoTask, got %v", err)
	}
	if !strings.Contains(err.Error(), "over 1 combinations") {
		t.Fatalf("error should report the combination count: %v", err)
	}
}

func TestSelectWithoutInputs(t *testing.T) {
	t.Parallel()

	empty := NewTaskSelector(map[string][]string{"Польща": {}}, []string{"Туризм"}, nil, nil)
	if _, err := empty.Select(context.Background()); !errors.Is(err, ErrNoTask) {
		t.Fatalf("expected ErrNoTask for countries without cities, got %v", err)
	}

	noCategories := NewTaskSelector(map[string][]string{"Польща": {"Варшава"}}, nil, nil, nil)
	if _, err := noCategories.Select(context.Background()); !errors.Is(err, ErrNoTask) {
		t.Fatalf("expected ErrNoTask without categories, got %v", err)
	}
}

func TestSelectPropagatesLedgerErrors(t *testing.T) {
	t.Parallel()

	ledger := newMemoryLedger()
	ledger.err = errBoom
	s := NewTaskSelector(map[string][]string{"Польща": {"Варшава"}}, []string{"Туризм"}, ledger, nil)

	if _, err := s.Select(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("expected ledger error, got %v", err)
	}
}

func TestSelectHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewTaskSelector(map[string][]string{"Польща": {"Варшава"}}, []string{"Туризм"}, newMemoryLedger(), nil)
	if _, err := s.Select(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
