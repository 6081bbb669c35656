package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

type scheduledTimer struct {
	timer *time.Timer
	gen   uint64
}

// Timers runs keyed, cancellable one-shot callbacks. Scheduling a key again replaces the
// pending callback. A cancelled or replaced callback never runs, even if its timer already fired.
type Timers struct {
	name     string
	mu       sync.Mutex
	timers   map[string]scheduledTimer
	gen      uint64
	closed   bool
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewTimers creates a timer worker; name is used in logs
func NewTimers(name string) *Timers {
	return &Timers{
		name:     name,
		timers:   make(map[string]scheduledTimer),
		shutdown: make(chan struct{}),
	}
}

// Schedule runs fn after d under key. It returns false once the worker is shut down.
func (w *Timers) Schedule(key string, d time.Duration, fn func(ctx context.Context)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	if existing, ok := w.timers[key]; ok {
		existing.timer.Stop()
		delete(w.timers, key)
	}

	w.gen++
	gen := w.gen
	if d < 0 {
		d = 0
	}

	logger.FromContext(context.Background()).Debug(LogMsgTimerScheduled, "worker", w.name, "key", key, "delay", d)

	timer := time.AfterFunc(d, func() {
		w.fire(key, gen, fn)
	})
	w.timers[key] = scheduledTimer{timer: timer, gen: gen}
	return true
}

func (w *Timers) fire(key string, gen uint64, fn func(ctx context.Context)) {
	w.mu.Lock()
	current, ok := w.timers[key]
	if w.closed || !ok || current.gen != gen {
		w.mu.Unlock()
		return
	}
	delete(w.timers, key)
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()

	select {
	case <-w.shutdown:
		return
	default:
	}

	ctx := logger.WithFields(context.Background(), "worker", w.name, "timer", key)
	logger.FromContext(ctx).Debug(LogMsgTimerFired)
	fn(ctx)
}

// Cancel prevents the callback under key from running. It reports whether one was pending.
func (w *Timers) Cancel(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, ok := w.timers[key]
	if !ok {
		return false
	}
	existing.timer.Stop()
	delete(w.timers, key)
	return true
}

// Pending returns the number of scheduled callbacks
func (w *Timers) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

// Shutdown cancels every pending callback and waits for running ones to return
func (w *Timers) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + w.name)

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	for key, t := range w.timers {
		t.timer.Stop()
		log.Info(LogMsgTimerCancelled, "worker", w.name, "key", key)
	}
	w.timers = make(map[string]scheduledTimer)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(w.name + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(w.name + " shutdown timeout, some callbacks may still be running")
		return ctx.Err()
	}
}
