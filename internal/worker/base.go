package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// BaseWorker provides common functionality for background workers that manage timers
type BaseWorker struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[string]*time.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

func (w *BaseWorker) stopping() bool {
	select {
	case <-w.shutdown:
		return true
	default:
		return false
	}
}

// schedule runs fn after d, replacing any pending timer for id
func (w *BaseWorker) schedule(id string, d time.Duration, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopping() {
		return
	}
	if existing, ok := w.timers[id]; ok {
		existing.Stop()
	}
	w.timers[id] = time.AfterFunc(d, func() {
		w.removeTimer(id)
		if w.stopping() {
			return
		}
		w.track(fn)
	})
}

// track runs fn in a goroutine that shutdown waits for
func (w *BaseWorker) track(fn func()) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn()
	}()
}

func (w *BaseWorker) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) removeTimer(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.timers, id)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWorkerShuttingDown, "worker", workerName)

	w.once.Do(func() { close(w.shutdown) })

	w.mu.Lock()
	for id, timer := range w.timers {
		timer.Stop()
		log.Debug(LogMsgTimerCancelled, "worker", workerName, "id", id)
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgWorkerShutdownComplete, "worker", workerName)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerShutdownTimeout, "worker", workerName)
		return ctx.Err()
	}
}
