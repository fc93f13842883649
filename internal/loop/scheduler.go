package loop

import (
	"context"
	"sync"
	"time"
)

// Ticker delivers tick signals. *time.Ticker satisfies it through
// NewTimeTicker; tests drive a channel by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every interval.
type TickerFunc func(interval time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(interval time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(interval)}
}

// StepFunc advances the game by one fixed step.
type StepFunc func() (ended bool, err error)

// Scheduler calls a step function once per tick until the round ends.
type Scheduler struct {
	interval  time.Duration
	newTicker TickerFunc

	stopOnce sync.Once
	stop     chan struct{}
}

// NewScheduler creates a scheduler ticking every interval. A nil newTicker
// uses the wall clock.
func NewScheduler(interval time.Duration, newTicker TickerFunc) *Scheduler {
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	return &Scheduler{
		interval:  interval,
		newTicker: newTicker,
		stop:      make(chan struct{}),
	}
}

// Run blocks, stepping once per tick. It returns nil when the step reports the
// round ended, when Stop is called, or when ctx is cancelled. A step error is
// returned as is. Ticks missed while a step runs are dropped, never replayed.
func (s *Scheduler) Run(ctx context.Context, step StepFunc) error {
	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-ticker.C():
			ended, err := step()
			if err != nil {
				return err
			}
			if ended {
				return nil
			}
		}
	}
}

// Stop makes Run return after the step in progress. Safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
