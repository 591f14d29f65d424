package retry

import (
	"context"
	"sync"
	"time"

	"github.com/amani1505/tailoring-bridge/internal/cache"
	"github.com/amani1505/tailoring-bridge/internal/outcome"
)

// Replayer retries a previously cached upload. The upload package provides
// the implementation.
type Replayer interface {
	Replay(ctx context.Context, rec cache.Record) outcome.UploadOutcome
}

// Logger interface for dependency injection
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// WorkerConfig configures the retry worker
type WorkerConfig struct {
	Interval time.Duration // Time between drain passes (default: 30 seconds)
	Backoff  BackoffConfig
	Logger   Logger
}

// Worker periodically drains the offline cache
type Worker struct {
	cache    *cache.Cache
	replayer Replayer
	interval time.Duration
	backoff  BackoffConfig
	logger   Logger

	mu sync.Mutex
	// In-flight tracking to prevent duplicate replays across passes
	inFlight map[string]bool

	// Statistics
	replaysTotal   int64
	replaysSuccess int64
	replaysFailed  int64
	replaysDropped int64
	lastPassTime   time.Time
}

// WorkerStats is a snapshot of retry worker statistics
type WorkerStats struct {
	ReplaysTotal   int64     `json:"replays_total"`
	ReplaysSuccess int64     `json:"replays_success"`
	ReplaysFailed  int64     `json:"replays_failed"`
	ReplaysDropped int64     `json:"replays_dropped"`
	LastPassTime   time.Time `json:"last_pass_time"`
}

// NewWorker creates a retry worker draining the given cache
func NewWorker(c *cache.Cache, replayer Replayer, cfg WorkerConfig) *Worker {
	interval := cfg.Interval
	if interval == 0 {
		interval = 30 * time.Second
	}
	backoff := cfg.Backoff
	if backoff.InitialSeconds == 0 {
		backoff = DefaultBackoffConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	return &Worker{
		cache:    c,
		replayer: replayer,
		interval: interval,
		backoff:  backoff,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// Run drains the cache on a fixed interval until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Retry worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Retry worker stopped")
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain performs a single pass over all due records. Returns the number of
// records successfully replayed.
func (w *Worker) Drain(ctx context.Context) int {
	w.cache.ExpireOld()

	due, err := w.cache.Due(time.Now().UTC())
	if err != nil {
		w.logger.Error("Failed to list pending uploads", "error", err)
		return 0
	}

	w.mu.Lock()
	w.lastPassTime = time.Now()
	w.mu.Unlock()

	if len(due) == 0 {
		return 0
	}

	w.logger.Info("Draining offline cache", "due", len(due))

	succeeded := 0
	for _, rec := range due {
		if ctx.Err() != nil {
			return succeeded
		}
		replayed, cont := w.replayOne(ctx, rec)
		if replayed {
			succeeded++
		}
		if !cont {
			// The connection state that failed this record will fail the
			// rest of the pass too
			break
		}
	}
	return succeeded
}

// replayOne retries a single record. Reports whether the record was replayed
// successfully and whether the pass should continue to the next record.
func (w *Worker) replayOne(ctx context.Context, rec cache.Record) (replayed, cont bool) {
	w.mu.Lock()
	if w.inFlight[rec.LocalID] {
		w.mu.Unlock()
		return false, true
	}
	w.inFlight[rec.LocalID] = true
	w.replaysTotal++
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.inFlight, rec.LocalID)
		w.mu.Unlock()
	}()

	result := w.replayer.Replay(ctx, rec)

	switch {
	case result.Status == outcome.Success:
		if err := w.cache.MarkUploaded(rec.LocalID); err != nil {
			w.logger.Warn("Failed to remove replayed record", "local_id", rec.LocalID, "error", err)
		}
		w.mu.Lock()
		w.replaysSuccess++
		w.mu.Unlock()
		w.logger.Info("Cached upload replayed", "local_id", rec.LocalID, "endpoint", rec.Endpoint)
		return true, true

	case outcome.Retryable(result.Status):
		next := NextAttempt(rec.Attempts+1, w.backoff, time.Now().UTC())
		if err := w.cache.MarkFailed(rec.LocalID, result.Message, next); err != nil {
			w.logger.Warn("Failed to update record after retry", "local_id", rec.LocalID, "error", err)
		}
		w.mu.Lock()
		w.replaysFailed++
		w.mu.Unlock()
		w.logger.Warn("Replay failed, will retry",
			"local_id", rec.LocalID,
			"status", result.Status.String(),
			"attempts", rec.Attempts+1,
			"next_attempt", next.Format(time.RFC3339))
		return false, false

	default:
		// Terminal failure, the record can never succeed
		if err := w.cache.Drop(rec.LocalID); err != nil {
			w.logger.Warn("Failed to drop record", "local_id", rec.LocalID, "error", err)
		}
		w.mu.Lock()
		w.replaysDropped++
		w.mu.Unlock()
		w.logger.Warn("Dropping cached upload after terminal failure",
			"local_id", rec.LocalID,
			"status", result.Status.String(),
			"message", result.Message)
		return false, true
	}
}

// GetStats returns a snapshot of worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WorkerStats{
		ReplaysTotal:   w.replaysTotal,
		ReplaysSuccess: w.replaysSuccess,
		ReplaysFailed:  w.replaysFailed,
		ReplaysDropped: w.replaysDropped,
		LastPassTime:   w.lastPassTime,
	}
}
