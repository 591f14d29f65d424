package upload

import (
	"context"

	"github.com/amani1505/tailoring-bridge/internal/clock"
	"github.com/amani1505/tailoring-bridge/internal/probe"
)

// Request describes one multipart upload to the measurement service
type Request struct {
	Endpoint string            // Service path, e.g. /measurements/process
	Files    map[string]string // Part field name -> local file path
	Fields   map[string]string // Metadata form fields
	OwnerRef string            // User the upload belongs to, kept on cached records
}

// ProcessRequest describes a dual-photo measurement processing upload
type ProcessRequest struct {
	FrontImage string
	SideImage  string
	UserID     string
	Height     string
	Gender     string
	Notes      string
}

// ConnectivityProber reports the reachability of the measurement service
type ConnectivityProber interface {
	Probe(ctx context.Context) probe.State
}

// ClockHealth reports timestamp confidence for cached records
type ClockHealth interface {
	Confidence() clock.Confidence
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
