package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/ports"
)

// DefaultSelectAttempts bounds the random search for an unposted combination.
const DefaultSelectAttempts = 100

// ErrNoTask means no unposted combination was found within the attempt budget.
var ErrNoTask = errors.New("no unposted task found")

// TaskSelector draws random (country, city, category) combinations.
type TaskSelector struct {
	countries  []string
	cities     map[string][]string
	categories []string
	ledger     ports.TaskLedger
	attempts   int
	rnd        *rand.Rand
}

// NewTaskSelector snapshots the location and category lists. A nil rnd uses
// a randomly seeded source.
func NewTaskSelector(locations map[string][]string, categories []string, ledger ports.TaskLedger, rnd *rand.Rand) *TaskSelector {
	s := &TaskSelector{
		cities:   map[string][]string{},
		ledger:   ledger,
		attempts: DefaultSelectAttempts,
		rnd:      rnd,
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for country, cities := range locations {
		var kept []string
		for _, city := range cities {
			if city != "" {
				kept = append(kept, city)
			}
		}
		if country == "" || len(kept) == 0 {
			continue
		}
		s.countries = append(s.countries, country)
		s.cities[country] = kept
	}
	sort.Strings(s.countries)

	for _, c := range categories {
		if c != "" {
			s.categories = append(s.categories, c)
		}
	}
	return s
}

// Combinations is the number of distinct tasks the selector can produce.
func (s *TaskSelector) Combinations() int {
	total := 0
	for _, country := range s.countries {
		total += len(s.cities[country])
	}
	return total * len(s.categories)
}

// Select returns a random combination the ledger has not seen yet.
func (s *TaskSelector) Select(ctx context.Context) (domain.Task, error) {
	if len(s.countries) == 0 || len(s.categories) == 0 {
		return domain.Task{}, ErrNoTask
	}

	for i := 0; i < s.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return domain.Task{}, err
		}

		country := s.countries[s.rnd.IntN(len(s.countries))]
		cities := s.cities[country]
		task := domain.Task{
			Country:  country,
			City:     cities[s.rnd.IntN(len(cities))],
			Category: s.categories[s.rnd.IntN(len(s.categories))],
		}

		if s.ledger == nil {
			return task, nil
		}
		posted, err := s.ledger.IsPosted(ctx, task)
		if err != nil {
			return domain.Task{}, fmt.Errorf("check posted: %w", err)
		}
		if !posted {
			return task, nil
		}
	}

	return domain.Task{}, fmt.Errorf("%w: %d attempts over %d combinations", ErrNoTask, s.attempts, s.Combinations())
}
