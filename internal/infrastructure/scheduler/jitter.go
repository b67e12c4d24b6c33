package scheduler

import (
	"context"
	"sync"
	"time"

	"ArticlesPublisher/internal/ports"
)

// JitterScheduler runs a job back to back, sleeping whatever delay the job
// returns before the next run. The job owns the randomised pacing.
type JitterScheduler struct {
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*JitterScheduler)(nil)

// NewJitterScheduler builds an idle scheduler.
func NewJitterScheduler() *JitterScheduler {
	return &JitterScheduler{}
}

// Start launches the loop; the first run happens immediately.
func (s *JitterScheduler) Start(ctx context.Context, job func(time.Time) time.Duration) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)
		for {
			delay := job(time.Now())
			if delay < 0 {
				delay = 0
			}

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			case <-stop:
				timer.Stop()
				return
			}
		}
	}()

	return nil
}

// Done is closed once the loop exits; nil before Start.
func (s *JitterScheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Stop halts the loop and waits for the current run to finish.
func (s *JitterScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop = nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
