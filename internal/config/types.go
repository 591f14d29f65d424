package config

import (
	"time"

	"github.com/docker/go-units"
)

// Config represents the root configuration structure
type Config struct {
	Service Service `json:"service"`           // Measurement service settings
	Probe   *Probe  `json:"probe,omitempty"`   // Connectivity probe settings
	Upload  *Upload `json:"upload,omitempty"`  // Upload behavior
	Cache   *Cache  `json:"cache,omitempty"`   // Offline cache settings
	Retry   *Retry  `json:"retry,omitempty"`   // Retry worker settings
	Image   *Image  `json:"image,omitempty"`   // Optional pre-upload image processing
	Clock   *Clock  `json:"clock,omitempty"`   // NTP time health settings
	Export  *Export `json:"export,omitempty"`  // Report export settings
	Session string  `json:"session,omitempty"` // Session file path (default: <config dir>/session.json)
}

// Service holds the remote measurement service settings
type Service struct {
	BaseURL        string `json:"base_url"`                  // e.g. https://api.tailormate.example
	HealthPath     string `json:"health_path,omitempty"`     // Default: /health
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Request timeout for CRUD calls, default 15
	DeviceID       string `json:"device_id,omitempty"`       // Client/device identifier sent with uploads
}

// Probe holds connectivity probe settings
type Probe struct {
	InternetURL           string `json:"internet_url,omitempty"`            // Default: https://connectivitycheck.gstatic.com/generate_204
	DNSHostname           string `json:"dns_hostname,omitempty"`            // Default: dns.google
	HealthTimeoutSeconds  int    `json:"health_timeout_seconds,omitempty"`  // Default: 10
	ProbeTimeoutSeconds   int    `json:"probe_timeout_seconds,omitempty"`   // Default: 5
	ResolveTimeoutSeconds int    `json:"resolve_timeout_seconds,omitempty"` // Default: 5
}

// Upload holds upload executor settings
type Upload struct {
	MaxFileSize    string `json:"max_file_size,omitempty"`   // Human size, e.g. "10MiB". Default: 10MiB
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Default: 30 (processing endpoints are slow)
}

// Cache holds offline cache settings
type Cache struct {
	Dir           string `json:"dir,omitempty"`             // Default: <config dir>/pending
	MaxRecords    int    `json:"max_records,omitempty"`     // Default: 200
	MaxAgeSeconds int    `json:"max_age_seconds,omitempty"` // Default: 604800 (7 days)
}

// Retry holds retry worker settings
type Retry struct {
	IntervalSeconds int     `json:"interval_seconds,omitempty"` // Drain tick, default 30
	InitialSeconds  int     `json:"initial_seconds,omitempty"`  // Initial backoff, default 60
	MaxSeconds      int     `json:"max_seconds,omitempty"`      // Max backoff, default 3600
	Multiplier      float64 `json:"multiplier,omitempty"`       // Default: 2.0
	Jitter          *bool   `json:"jitter,omitempty"`           // Default: true
}

// Image controls optional resolution and quality reduction before upload.
// By default photos are uploaded exactly as selected.
type Image struct {
	MaxWidth  int `json:"max_width,omitempty"`  // 0 = no limit
	MaxHeight int `json:"max_height,omitempty"` // 0 = no limit
	Quality   int `json:"quality,omitempty"`    // JPEG quality 1-100, 0 = no re-encoding
}

// Clock holds NTP time health settings
type Clock struct {
	Enabled          bool     `json:"enabled,omitempty"`
	Servers          []string `json:"servers,omitempty"`            // Default: pool.ntp.org
	TimeoutSeconds   int      `json:"timeout_seconds,omitempty"`    // Default: 5
	MaxOffsetSeconds int      `json:"max_offset_seconds,omitempty"` // Default: 5
}

// Export holds report export settings
type Export struct {
	Dir  string `json:"dir,omitempty"` // Default: current directory
	SFTP *SFTP  `json:"sftp,omitempty"`
}

// SFTP holds report delivery settings for a remote drop box
type SFTP struct {
	Host                  string `json:"host"`
	Port                  int    `json:"port,omitempty"` // Default: 22
	Username              string `json:"username"`
	Password              string `json:"password"`
	BasePath              string `json:"base_path,omitempty"`
	TimeoutConnectSeconds int    `json:"timeout_connect_seconds,omitempty"` // Default: 30
}

// ServiceTimeout returns the CRUD request timeout
func (s Service) ServiceTimeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// MaxFileSizeBytes returns the configured upload size limit in bytes
func (u *Upload) MaxFileSizeBytes() int64 {
	if u == nil || u.MaxFileSize == "" {
		return 10 * 1024 * 1024
	}
	size, err := units.RAMInBytes(u.MaxFileSize)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

// UploadTimeout returns the multipart upload timeout
func (u *Upload) UploadTimeout() time.Duration {
	if u == nil || u.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// NeedsProcessing returns true if any image processing is configured
func (i *Image) NeedsProcessing() bool {
	if i == nil {
		return false
	}
	return i.MaxWidth > 0 || i.MaxHeight > 0 || i.Quality > 0
}

// GetQuality returns the clamped JPEG quality setting
func (i *Image) GetQuality() int {
	if i == nil {
		return 0
	}
	if i.Quality < 0 {
		return 0
	}
	if i.Quality > 100 {
		return 100
	}
	return i.Quality
}

// JitterEnabled returns whether retry backoff jitter is on
func (r *Retry) JitterEnabled() bool {
	if r == nil || r.Jitter == nil {
		return true
	}
	return *r.Jitter
}
