// Package update checks GitHub releases for a newer build
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultReleasesURL = "https://api.github.com/repos/amani1505/tailoring-bridge/releases/latest"
	requestTimeout     = 10 * time.Second
)

// Status represents the result of an update check
type Status struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version,omitempty"`
	LatestURL       string `json:"latest_url,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
}

// Checker performs one-shot release checks against GitHub
type Checker struct {
	currentVersion string
	releasesURL    string
	client         *http.Client
}

// NewChecker creates an update checker for the given build version
func NewChecker(currentVersion string) *Checker {
	return &Checker{
		currentVersion: currentVersion,
		releasesURL:    defaultReleasesURL,
		client:         &http.Client{Timeout: requestTimeout},
	}
}

// Check queries the latest release and compares it to the current version
func (c *Checker) Check(ctx context.Context) (Status, error) {
	status := Status{CurrentVersion: c.currentVersion}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releasesURL, nil)
	if err != nil {
		return status, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "tailoring-bridge/"+c.currentVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return status, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No releases yet
		return status, nil
	}
	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return status, err
	}

	status.LatestVersion = release.TagName
	status.LatestURL = release.HTMLURL
	status.UpdateAvailable = c.isNewerVersion(release.TagName)
	return status, nil
}

// isNewerVersion checks if the release tag is newer than the current version
func (c *Checker) isNewerVersion(tagName string) bool {
	// Dev builds are managed manually
	if c.currentVersion == "dev" || c.currentVersion == "" {
		return false
	}

	currentVer := stripV(c.currentVersion)
	latestVer := stripV(tagName)

	if currentVer == latestVer {
		return false
	}
	return compareVersions(latestVer, currentVer) > 0
}

func stripV(v string) string {
	if len(v) > 0 && v[0] == 'v' {
		return v[1:]
	}
	return v
}

// compareVersions compares two semantic version strings.
// Returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal.
func compareVersions(v1, v2 string) int {
	parts1 := parseVersion(v1)
	parts2 := parseVersion(v2)

	for i := 0; i < 3; i++ {
		if parts1[i] > parts2[i] {
			return 1
		}
		if parts1[i] < parts2[i] {
			return -1
		}
	}
	return 0
}

// parseVersion parses a version string like "2.0.3" into [2, 0, 3]
func parseVersion(v string) [3]int {
	var parts [3]int
	var current int
	var idx int

	for i := 0; i < len(v) && idx < 3; i++ {
		if v[i] >= '0' && v[i] <= '9' {
			current = current*10 + int(v[i]-'0')
		} else if v[i] == '.' {
			parts[idx] = current
			current = 0
			idx++
		}
	}
	if idx < 3 {
		parts[idx] = current
	}
	return parts
}
