package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/docker/go-units"
)

// Validate checks the configuration for errors
func Validate(c *Config) error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required (or set TAILORBRIDGE_BASE_URL)")
	}

	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		return fmt.Errorf("service.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service.base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("service.base_url has no host")
	}

	if c.Service.HealthPath != "" && !strings.HasPrefix(c.Service.HealthPath, "/") {
		return fmt.Errorf("service.health_path must start with /, got %q", c.Service.HealthPath)
	}

	if c.Upload != nil && c.Upload.MaxFileSize != "" {
		size, err := units.RAMInBytes(c.Upload.MaxFileSize)
		if err != nil {
			return fmt.Errorf("upload.max_file_size %q: %w", c.Upload.MaxFileSize, err)
		}
		if size <= 0 {
			return fmt.Errorf("upload.max_file_size must be positive, got %q", c.Upload.MaxFileSize)
		}
	}

	if c.Image != nil {
		if c.Image.MaxWidth < 0 || c.Image.MaxHeight < 0 {
			return fmt.Errorf("image dimensions must not be negative")
		}
		if c.Image.Quality < 0 || c.Image.Quality > 100 {
			return fmt.Errorf("image.quality must be 0-100, got %d", c.Image.Quality)
		}
	}

	if c.Retry != nil {
		if c.Retry.Multiplier < 0 {
			return fmt.Errorf("retry.multiplier must not be negative")
		}
		if c.Retry.MaxSeconds > 0 && c.Retry.InitialSeconds > c.Retry.MaxSeconds {
			return fmt.Errorf("retry.initial_seconds (%d) exceeds retry.max_seconds (%d)",
				c.Retry.InitialSeconds, c.Retry.MaxSeconds)
		}
	}

	if c.Export != nil && c.Export.SFTP != nil {
		s := c.Export.SFTP
		if s.Host == "" {
			return fmt.Errorf("export.sftp.host is required when sftp delivery is configured")
		}
		if s.Username == "" {
			return fmt.Errorf("export.sftp.username is required")
		}
		if s.Password == "" {
			return fmt.Errorf("export.sftp.password is required")
		}
	}

	return nil
}
