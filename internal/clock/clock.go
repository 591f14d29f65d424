// Package clock checks the local clock against NTP so cached upload records
// carry a confidence level for their timestamps.
package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// Confidence indicates how much a record timestamp can be trusted
type Confidence string

const (
	ConfidenceHigh Confidence = "high" // NTP healthy, clock trusted
	ConfidenceLow  Confidence = "low"  // NTP unhealthy or never checked
)

// Config configures clock health checks
type Config struct {
	Servers              []string `json:"servers"`                // Default: pool.ntp.org, time.google.com
	CheckIntervalSeconds int      `json:"check_interval_seconds"` // Default: 3600
	MaxOffsetSeconds     int      `json:"max_offset_seconds"`     // Default: 5
	TimeoutSeconds       int      `json:"timeout_seconds"`        // Default: 5
}

// Status is a snapshot of clock health
type Status struct {
	Healthy   bool          `json:"healthy"`
	Offset    time.Duration `json:"offset"`
	LastCheck time.Time     `json:"last_check"`
}

// Health manages clock health status and periodic NTP checks
type Health struct {
	mu        sync.RWMutex
	healthy   bool
	offset    time.Duration
	lastCheck time.Time

	servers       []string
	checkInterval time.Duration
	maxOffset     time.Duration
	timeout       time.Duration

	stopCh chan struct{}
}

// NewHealth creates a clock health manager
func NewHealth(config Config) *Health {
	servers := config.Servers
	if len(servers) == 0 {
		servers = []string{"pool.ntp.org", "time.google.com"}
	}

	checkInterval := time.Duration(config.CheckIntervalSeconds) * time.Second
	if checkInterval == 0 {
		checkInterval = time.Hour
	}
	maxOffset := time.Duration(config.MaxOffsetSeconds) * time.Second
	if maxOffset == 0 {
		maxOffset = 5 * time.Second
	}
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Health{
		healthy:       false, // Unhealthy until first check
		servers:       servers,
		checkInterval: checkInterval,
		maxOffset:     maxOffset,
		timeout:       timeout,
		stopCh:        make(chan struct{}),
	}
}

// IsHealthy returns whether the clock is currently considered healthy
func (h *Health) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.healthy
}

// Confidence returns the confidence level for timestamps taken now
func (h *Health) Confidence() Confidence {
	if h.IsHealthy() {
		return ConfidenceHigh
	}
	return ConfidenceLow
}

// GetStatus returns a snapshot of clock health
func (h *Health) GetStatus() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Status{
		Healthy:   h.healthy,
		Offset:    h.offset,
		LastCheck: h.lastCheck,
	}
}

// Start begins periodic health checks in the background
func (h *Health) Start() {
	go h.run()
}

// Stop halts periodic health checks
func (h *Health) Stop() {
	close(h.stopCh)
}

func (h *Health) run() {
	h.Check()

	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			h.Check()
		}
	}
}

// Check queries the configured NTP servers once, trying each until one
// answers. Returns the measured offset.
func (h *Health) Check() (time.Duration, error) {
	var lastErr error
	for _, server := range h.servers {
		offset, err := h.queryNTP(server)
		if err != nil {
			lastErr = err
			continue
		}

		h.mu.Lock()
		h.offset = offset
		h.lastCheck = time.Now()
		h.healthy = absDuration(offset) <= h.maxOffset
		h.mu.Unlock()
		return offset, nil
	}

	// All servers failed
	h.mu.Lock()
	h.healthy = false
	h.lastCheck = time.Now()
	h.mu.Unlock()

	if lastErr == nil {
		lastErr = fmt.Errorf("no NTP servers configured")
	}
	return 0, fmt.Errorf("all NTP servers failed: %w", lastErr)
}

func (h *Health) queryNTP(server string) (time.Duration, error) {
	response, err := ntp.QueryWithOptions(server, ntp.QueryOptions{
		Timeout: h.timeout,
	})
	if err != nil {
		return 0, fmt.Errorf("NTP query failed: %w", err)
	}
	return response.ClockOffset, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
