package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "text format",
			config: Config{Level: "info", Format: "text"},
		},
		{
			name:   "json format",
			config: Config{Level: "debug", Format: "json"},
		},
		{
			name:   "default level",
			config: Config{Level: "invalid", Format: "text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.config.Output = buf
			l := New(tt.config)
			if l == nil {
				t.Fatal("New() returned nil")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Config{
		Level:  "debug",
		Format: "text",
		Output: buf,
	})

	tests := []struct {
		name  string
		fn    func(string, ...interface{})
		level string
	}{
		{"debug", l.Debug, "DEBUG"},
		{"info", l.Info, "INFO"},
		{"warn", l.Warn, "WARN"},
		{"error", l.Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("test message", "key", "value")
			output := buf.String()
			if !strings.Contains(output, tt.level) {
				t.Errorf("output should contain %s, got: %s", tt.level, output)
			}
			if !strings.Contains(output, "test message") {
				t.Errorf("output should contain message, got: %s", output)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Config{
		Level:  "info",
		Format: "text",
		Output: buf,
	})

	child := l.With("component", "upload")
	if child == nil {
		t.Fatal("With() returned nil")
	}

	child.Info("test message")
	if !strings.Contains(buf.String(), "component") {
		t.Errorf("output should contain component context, got: %s", buf.String())
	}
}

func TestLogger_DebugFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Config{
		Level:  "info",
		Format: "text",
		Output: buf,
	})

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output should be filtered at info level, got: %s", buf.String())
	}
}

func TestBuffer_GetLast(t *testing.T) {
	b := NewBuffer(3)

	for _, msg := range []string{"one", "two", "three", "four"} {
		b.Add(LogEntry{Timestamp: time.Now(), Level: "INFO", Message: msg})
	}

	entries := b.GetLast(10)
	if len(entries) != 3 {
		t.Fatalf("expected capacity-bounded 3 entries, got %d", len(entries))
	}
	// Oldest entry rolled out of the ring
	for _, e := range entries {
		if e.Message == "one" {
			t.Error("expected oldest entry evicted")
		}
	}
	if entries[len(entries)-1].Message != "four" {
		t.Errorf("expected newest entry last, got %s", entries[len(entries)-1].Message)
	}
}

func TestFormatEntry(t *testing.T) {
	line := FormatEntry(LogEntry{
		Timestamp: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		Level:     "WARN",
		Message:   "upload failed",
		Attrs:     map[string]interface{}{"endpoint": "/measurements/process"},
	})

	if !strings.Contains(line, "level=WARN") || !strings.Contains(line, `msg="upload failed"`) {
		t.Errorf("unexpected format: %s", line)
	}
	if !strings.Contains(line, "endpoint=/measurements/process") {
		t.Errorf("expected attrs in line: %s", line)
	}
}
