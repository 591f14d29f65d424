package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckFindsNewerRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/vnd.github.v3+json" {
			t.Errorf("Missing GitHub Accept header")
		}
		w.Write([]byte(`{"tag_name":"v1.2.0","html_url":"https://github.com/amani1505/tailoring-bridge/releases/tag/v1.2.0"}`))
	}))
	defer server.Close()

	c := NewChecker("v1.1.0")
	c.releasesURL = server.URL

	status, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !status.UpdateAvailable {
		t.Error("Expected update available")
	}
	if status.LatestVersion != "v1.2.0" {
		t.Errorf("Expected latest v1.2.0, got %s", status.LatestVersion)
	}
}

func TestCheckNoReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewChecker("v1.0.0")
	c.releasesURL = server.URL

	status, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if status.UpdateAvailable {
		t.Error("Expected no update when no releases exist")
	}
}

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		current  string
		tag      string
		expected bool
	}{
		{"v1.0.0", "v1.0.1", true},
		{"v1.0.0", "v1.1.0", true},
		{"v1.0.0", "v2.0.0", true},
		{"v1.0.0", "v1.0.0", false},
		{"v2.0.0", "v1.9.9", false},
		{"1.0.0", "v1.0.1", true},
		{"dev", "v9.9.9", false},
		{"", "v9.9.9", false},
	}

	for _, tt := range tests {
		c := NewChecker(tt.current)
		if got := c.isNewerVersion(tt.tag); got != tt.expected {
			t.Errorf("current=%s tag=%s: expected %v, got %v", tt.current, tt.tag, tt.expected, got)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2   string
		expected int
	}{
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		{"1.0.0", "1.0.0", 0},
		{"10.0.0", "9.9.9", 1},
	}

	for _, tt := range tests {
		if got := compareVersions(tt.v1, tt.v2); got != tt.expected {
			t.Errorf("compareVersions(%s, %s): expected %d, got %d", tt.v1, tt.v2, tt.expected, got)
		}
	}
}
