// Package scheduler runs a single action repeatedly at a fixed interval.
// The loop is self-rescheduling: each delay is armed only after the
// previous invocation completes, so invocations never overlap and one
// cycle takes interval plus execution time.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Action is one recurring unit of work.
type Action func(ctx context.Context) error

// Timer waits for a timeout and then invokes a callback once. It is the
// delay primitive the scheduler re-arms between invocations.
type Timer struct {
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

// NewTimer starts a timer that invokes callback after timeout unless
// cancelled first.
func NewTimer(timeout time.Duration, callback func()) *Timer {
	t := &Timer{done: make(chan struct{})}
	t.timer = time.AfterFunc(timeout, func() {
		callback()
		t.finish()
	})
	return t
}

// Cancel stops the timer. A callback already running is not interrupted.
func (t *Timer) Cancel() {
	if t.timer.Stop() {
		t.finish()
	}
}

// Done is closed once the timer has fired or been cancelled.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}

func (t *Timer) finish() {
	t.once.Do(func() { close(t.done) })
}

// Scheduler drives recurring actions on a caller-supplied context. It
// owns no event loop of its own.
type Scheduler struct {
	logger *zap.Logger

	mu      sync.Mutex
	cancels []context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new scheduler
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Schedule runs action immediately and then again after every interval
// until ctx is cancelled or Stop is called. Action failures are logged
// and scheduling continues; a silently dead recurring task would have no
// user-visible symptom.
func (s *Scheduler) Schedule(ctx context.Context, name string, interval time.Duration, action Action) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx, name, interval, action)

	s.logger.Info("recurring action scheduled",
		zap.String("action", name),
		zap.Duration("interval", interval),
	)
}

// Stop cancels all scheduled actions and waits for in-flight invocations
// to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, action Action) {
	defer s.wg.Done()

	for {
		s.run(ctx, name, action)

		// Re-arm the delay only after the invocation completed.
		timer := NewTimer(interval, func() {})

		select {
		case <-ctx.Done():
			timer.Cancel()
			s.logger.Info("recurring action stopped", zap.String("action", name))
			return
		case <-timer.Done():
		}
	}
}

func (s *Scheduler) run(ctx context.Context, name string, action Action) {
	if ctx.Err() != nil {
		return
	}
	if err := action(ctx); err != nil {
		s.logger.Error("recurring action failed",
			zap.String("action", name),
			zap.Error(err),
		)
	}
}
