package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir returns the directory holding config, session and cache files
func DefaultDir() string {
	if dir := os.Getenv("TAILORBRIDGE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tailorbridge"
	}
	return filepath.Join(home, ".tailorbridge")
}

// Load loads configuration from the specified file path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&config)
	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the config file if it exists, otherwise returns
// a default config built from environment variables alone
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := &Config{}
		applyEnv(config)
		applyDefaults(config)
		if err := Validate(config); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		return config, nil
	}
	return Load(path)
}

// applyEnv overlays environment variables onto the config
func applyEnv(c *Config) {
	if v := os.Getenv("TAILORBRIDGE_BASE_URL"); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv("TAILORBRIDGE_DEVICE_ID"); v != "" {
		c.Service.DeviceID = v
	}
	if v := os.Getenv("TAILORBRIDGE_CACHE_DIR"); v != "" {
		if c.Cache == nil {
			c.Cache = &Cache{}
		}
		c.Cache.Dir = v
	}
}

// applyDefaults sets default values for optional fields
func applyDefaults(c *Config) {
	// Service defaults
	if c.Service.HealthPath == "" {
		c.Service.HealthPath = "/health"
	}
	if c.Service.TimeoutSeconds == 0 {
		c.Service.TimeoutSeconds = 15
	}
	if c.Service.DeviceID == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "tailorbridge"
		}
		c.Service.DeviceID = host
	}

	// Probe defaults
	if c.Probe == nil {
		c.Probe = &Probe{}
	}
	if c.Probe.InternetURL == "" {
		c.Probe.InternetURL = "https://connectivitycheck.gstatic.com/generate_204"
	}
	if c.Probe.DNSHostname == "" {
		c.Probe.DNSHostname = "dns.google"
	}
	if c.Probe.HealthTimeoutSeconds == 0 {
		c.Probe.HealthTimeoutSeconds = 10
	}
	if c.Probe.ProbeTimeoutSeconds == 0 {
		c.Probe.ProbeTimeoutSeconds = 5
	}
	if c.Probe.ResolveTimeoutSeconds == 0 {
		c.Probe.ResolveTimeoutSeconds = 5
	}

	// Upload defaults
	if c.Upload == nil {
		c.Upload = &Upload{}
	}
	if c.Upload.MaxFileSize == "" {
		c.Upload.MaxFileSize = "10MiB"
	}
	if c.Upload.TimeoutSeconds == 0 {
		c.Upload.TimeoutSeconds = 30
	}

	// Cache defaults
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = filepath.Join(DefaultDir(), "pending")
	}
	if c.Cache.MaxRecords == 0 {
		c.Cache.MaxRecords = 200
	}
	if c.Cache.MaxAgeSeconds == 0 {
		c.Cache.MaxAgeSeconds = 7 * 24 * 3600
	}

	// Retry defaults
	if c.Retry == nil {
		c.Retry = &Retry{}
	}
	if c.Retry.IntervalSeconds == 0 {
		c.Retry.IntervalSeconds = 30
	}
	if c.Retry.InitialSeconds == 0 {
		c.Retry.InitialSeconds = 60
	}
	if c.Retry.MaxSeconds == 0 {
		c.Retry.MaxSeconds = 3600
	}
	if c.Retry.Multiplier == 0 {
		c.Retry.Multiplier = 2.0
	}

	// Clock defaults
	if c.Clock == nil {
		c.Clock = &Clock{}
	}
	if c.Clock.Enabled && len(c.Clock.Servers) == 0 {
		c.Clock.Servers = []string{"pool.ntp.org"}
	}
	if c.Clock.TimeoutSeconds == 0 {
		c.Clock.TimeoutSeconds = 5
	}
	if c.Clock.MaxOffsetSeconds == 0 {
		c.Clock.MaxOffsetSeconds = 5
	}

	// Export defaults
	if c.Export == nil {
		c.Export = &Export{}
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.SFTP != nil {
		if c.Export.SFTP.Port == 0 {
			c.Export.SFTP.Port = 22
		}
		if c.Export.SFTP.TimeoutConnectSeconds == 0 {
			c.Export.SFTP.TimeoutConnectSeconds = 30
		}
	}

	// Session file
	if c.Session == "" {
		c.Session = filepath.Join(DefaultDir(), "session.json")
	}
}
