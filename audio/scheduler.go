package audio

import (
	"sync"
	"time"
)

// Scheduler abstracts the recurring beat timer so the musical state
// machine does not depend on a platform timer; tests drive a
// ManualScheduler instead of waiting wall-clock intervals
type Scheduler interface {
	// ScheduleRepeating invokes fn every interval until the returned
	// handle is cancelled. fn runs on the scheduler's goroutine
	ScheduleRepeating(interval time.Duration, fn func()) CancelHandle
}

// CancelHandle stops a scheduled repetition
// Cancel is idempotent; the repetition stops promptly but one in-flight
// callback may still complete after Cancel returns
type CancelHandle interface {
	Cancel()
}

// --- TickerScheduler: wall-clock implementation ---

// TickerScheduler runs callbacks on a time.Ticker goroutine
type TickerScheduler struct{}

// NewTickerScheduler creates the default wall-clock scheduler
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

type tickerHandle struct {
	stop chan struct{}
	once sync.Once
}

// Cancel stops future ticks; an already-dispatched callback may still be
// running, so callers must tolerate one trailing invocation
func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		close(h.stop)
	})
}

// ScheduleRepeating implements Scheduler
func (s *TickerScheduler) ScheduleRepeating(interval time.Duration, fn func()) CancelHandle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	h := &tickerHandle{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return h
}

// --- ManualScheduler: deterministic implementation for tests ---

// ManualScheduler holds scheduled callbacks and fires them only when
// Tick is called, making beat-counting logic testable without waiting
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	sched     *ManualScheduler
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	t.cancelled = true
}

// NewManualScheduler creates a scheduler driven by explicit Tick calls
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ScheduleRepeating implements Scheduler; the interval is recorded but
// not waited on
func (s *ManualScheduler) ScheduleRepeating(interval time.Duration, fn func()) CancelHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{sched: s, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Tick fires every live callback n times, synchronously
func (s *ManualScheduler) Tick(n int) {
	for i := 0; i < n; i++ {
		s.mu.Lock()
		live := make([]*manualTask, 0, len(s.tasks))
		kept := s.tasks[:0]
		for _, t := range s.tasks {
			if !t.cancelled {
				kept = append(kept, t)
				live = append(live, t)
			}
		}
		s.tasks = kept
		s.mu.Unlock()

		for _, t := range live {
			t.fn()
		}
	}
}
