package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Counter - журнал событий, общий для нескольких процессов (история поисков в postgres).
type Counter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// Journal - Counter, в который Shared сам дописывает пропущенные события
// (FileJournal). Журнал истории поисков пишет сервис, поэтому он просто Counter.
type Journal interface {
	Counter
	Append(ctx context.Context, at time.Time) error
}

// Shared - sliding window поверх внешнего журнала. Сам ничего не хранит:
// событие учитывается, когда вызывающий запишет его в журнал.
// Между Allow и записью другой процесс может успеть пройти, так что
// лимит может быть превышен на число одновременных запусков.
type Shared struct {
	counter Counter
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewShared(counter Counter, cfg Config) *Shared {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = DefaultRequestsPerMinute
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return &Shared{
		counter: counter,
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (s *Shared) Allow(ctx context.Context) (bool, error) {
	remaining, err := s.Remaining(ctx)
	if err != nil {
		return false, err
	}
	if remaining == 0 {
		return false, nil
	}
	if j, ok := s.counter.(Journal); ok {
		if err := j.Append(ctx, s.now()); err != nil {
			return false, fmt.Errorf("append event: %w", err)
		}
	}
	return true, nil
}

func (s *Shared) Remaining(ctx context.Context) (int, error) {
	n, err := s.counter.CountSince(ctx, s.now().Add(-s.window))
	if err != nil {
		return 0, fmt.Errorf("count recent events: %w", err)
	}
	if n >= s.limit {
		return 0, nil
	}
	return s.limit - n, nil
}

// ResetTime - самое позднее, когда освободится слот.
func (s *Shared) ResetTime() time.Time {
	return s.now().Add(s.window)
}
