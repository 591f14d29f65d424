package cache

import (
	"errors"
	"sync"
	"time"
)

// Errors
var (
	ErrEmpty        = errors.New("no pending uploads")
	ErrNotFound     = errors.New("pending upload not found")
	ErrInvalidEntry = errors.New("invalid pending upload")
)

// Record is one upload that could not complete, kept for later retry.
// The cache owns the record's lifecycle: storage, retry bookkeeping, deletion.
type Record struct {
	LocalID        string            `json:"local_id"`
	Endpoint       string            `json:"endpoint"`
	Files          map[string]string `json:"files"`  // part field name -> local file path
	Fields         map[string]string `json:"fields"` // metadata form fields
	OwnerRef       string            `json:"owner_ref"`
	CreatedAt      time.Time         `json:"created_at"`
	TimeConfidence string            `json:"time_confidence,omitempty"`
	Attempts       int               `json:"attempts"`
	LastError      string            `json:"last_error,omitempty"`
	NextAttempt    time.Time         `json:"next_attempt,omitempty"`
}

// Config defines cache capacity bounds
type Config struct {
	MaxRecords int `json:"max_records"`     // Default: 200
	MaxAge     int `json:"max_age_seconds"` // Default: 604800 (7 days)
}

// DefaultConfig returns sensible defaults for cache configuration
func DefaultConfig() Config {
	return Config{
		MaxRecords: 200,
		MaxAge:     7 * 24 * 3600,
	}
}

// Stats provides cache statistics for the status command
type Stats struct {
	Count     int    `json:"count"`
	OldestAge string `json:"oldest_age,omitempty"`

	// Session counters
	Cached   int64 `json:"cached"`
	Uploaded int64 `json:"uploaded"`
	Dropped  int64 `json:"dropped"`
	Expired  int64 `json:"expired"`
	Evicted  int64 `json:"evicted"`
}

// Cache is a disk-backed store of pending uploads
type Cache struct {
	dir    string
	config Config

	mu    sync.RWMutex
	count int

	// Session counters
	cached   int64
	uploaded int64
	dropped  int64
	expired  int64
	evicted  int64

	logger Logger
}

// Logger interface for dependency injection
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// defaultLogger is a no-op logger
type defaultLogger struct{}

func (d *defaultLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (d *defaultLogger) Info(msg string, keysAndValues ...interface{})  {}
func (d *defaultLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (d *defaultLogger) Error(msg string, keysAndValues ...interface{}) {}
