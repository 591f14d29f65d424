// Package retry drains the offline cache, replaying pending uploads with
// exponential backoff between attempts.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// BackoffConfig represents backoff configuration
type BackoffConfig struct {
	InitialSeconds int     // Initial backoff (default: 60)
	MaxSeconds     int     // Maximum backoff (default: 3600 = 1 hour)
	Multiplier     float64 // Backoff multiplier (default: 2.0)
	Jitter         bool    // Add jitter to prevent thundering herd (default: true)
}

// DefaultBackoffConfig returns default backoff configuration
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		InitialSeconds: 60,   // 1 minute
		MaxSeconds:     3600, // 1 hour
		Multiplier:     2.0,
		Jitter:         true,
	}
}

// CalculateBackoff calculates the backoff duration after the given number of
// failed attempts
func CalculateBackoff(attempts int, config BackoffConfig) time.Duration {
	if attempts <= 0 {
		return 0
	}

	// backoff = initial * (multiplier ^ (attempts - 1))
	backoff := float64(config.InitialSeconds) * math.Pow(config.Multiplier, float64(attempts-1))

	// Cap at maximum
	if backoff > float64(config.MaxSeconds) {
		backoff = float64(config.MaxSeconds)
	}

	// Add jitter if enabled (up to 20% of backoff time)
	if config.Jitter {
		backoff += backoff * 0.2 * rand.Float64()
	}

	return time.Duration(backoff * float64(time.Second))
}

// NextAttempt returns the earliest time a record with the given attempt count
// should be retried
func NextAttempt(attempts int, config BackoffConfig, now time.Time) time.Time {
	return now.Add(CalculateBackoff(attempts, config))
}
