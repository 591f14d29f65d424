// Package upload sends measurement photos to the remote service as multipart
// requests. Every upload runs the same pipeline regardless of endpoint:
// validate the files, probe connectivity, build the form, post, classify the
// result. Failures that stem from connectivity are handed to the offline
// cache for later retry.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/amani1505/tailoring-bridge/internal/cache"
	"github.com/amani1505/tailoring-bridge/internal/image"
	"github.com/amani1505/tailoring-bridge/internal/outcome"
	"github.com/amani1505/tailoring-bridge/internal/probe"
	"github.com/amani1505/tailoring-bridge/internal/validate"
)

const (
	// Endpoints served by the measurement service
	EndpointProcess     = "/measurements/process"
	EndpointUploadImage = "/uploads"
)

// ExecutorConfig configures the upload executor
type ExecutorConfig struct {
	BaseURL  string
	DeviceID string
	Timeout  time.Duration // Default: 30 seconds, processing endpoints are slow
	Logger   Logger
}

// Executor runs the upload pipeline
type Executor struct {
	baseURL   string
	deviceID  string
	client    *http.Client
	validator *validate.Validator
	prober    ConnectivityProber
	processor *image.Processor
	cache     *cache.Cache // nil disables the offline hand-off
	clock     ClockHealth  // nil omits timestamp confidence
	logger    Logger
}

// NewExecutor creates an upload executor. The cache and clock are optional.
func NewExecutor(cfg ExecutorConfig, validator *validate.Validator, prober ConnectivityProber,
	processor *image.Processor, c *cache.Cache, clk ClockHealth) *Executor {

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	return &Executor{
		baseURL:   cfg.BaseURL,
		deviceID:  cfg.DeviceID,
		client:    &http.Client{Timeout: timeout},
		validator: validator,
		prober:    prober,
		processor: processor,
		cache:     c,
		clock:     clk,
		logger:    logger,
	}
}

// ProcessMeasurement uploads a front and side photo for body measurement
// extraction
func (e *Executor) ProcessMeasurement(ctx context.Context, req ProcessRequest) outcome.UploadOutcome {
	fields := map[string]string{
		"userId": req.UserID,
		"height": req.Height,
		"gender": req.Gender,
	}
	if req.Notes != "" {
		fields["notes"] = req.Notes
	}

	return e.Execute(ctx, Request{
		Endpoint: EndpointProcess,
		Files: map[string]string{
			"frontImage": req.FrontImage,
			"sideImage":  req.SideImage,
		},
		Fields:   fields,
		OwnerRef: req.UserID,
	})
}

// UploadImage uploads a single photo without triggering measurement
// processing
func (e *Executor) UploadImage(ctx context.Context, path, userID string) outcome.UploadOutcome {
	return e.Execute(ctx, Request{
		Endpoint: EndpointUploadImage,
		Files:    map[string]string{"image": path},
		Fields:   map[string]string{"userId": userID},
		OwnerRef: userID,
	})
}

// Execute runs the full pipeline for one request. Connectivity failures are
// handed to the offline cache exactly once.
func (e *Executor) Execute(ctx context.Context, req Request) outcome.UploadOutcome {
	result := e.attempt(ctx, req)

	if outcome.Retryable(result.Status) && e.cache != nil {
		localID, err := e.cache.CacheUpload(e.toRecord(req))
		if err != nil {
			e.logger.Error("Failed to cache upload for retry", "error", err)
		} else {
			if result.Payload == nil {
				result.Payload = make(map[string]interface{})
			}
			result.Payload["cachedId"] = localID
			e.logger.Info("Upload handed to offline cache",
				"local_id", localID,
				"status", result.Status.String())
		}
	}

	return result
}

// Replay retries a previously cached upload. The record stays under the
// retry worker's control, so no second cache hand-off happens here.
func (e *Executor) Replay(ctx context.Context, rec cache.Record) outcome.UploadOutcome {
	return e.attempt(ctx, Request{
		Endpoint: rec.Endpoint,
		Files:    rec.Files,
		Fields:   rec.Fields,
		OwnerRef: rec.OwnerRef,
	})
}

// attempt runs validate, probe, post, classify without touching the cache
func (e *Executor) attempt(ctx context.Context, req Request) outcome.UploadOutcome {
	// Validate every file before spending a network round trip. Validation
	// also settles each part's content type so the form never re-derives it.
	contentTypes := make(map[string]string, len(req.Files))
	for _, part := range sortedParts(req.Files) {
		result := e.validator.Validate(req.Files[part])
		if !result.IsValid {
			return outcome.UploadOutcome{
				Status:  outcome.FileError,
				Message: result.ErrorMessage,
			}
		}
		contentTypes[part] = result.ContentType
	}

	// One probe per upload, not per file
	switch e.prober.Probe(ctx) {
	case probe.Offline:
		return outcome.UploadOutcome{
			Status:  outcome.Offline,
			Message: "no internet connection",
		}
	case probe.InternetOnlyServiceDown:
		return outcome.UploadOutcome{
			Status:  outcome.ServiceDown,
			Message: "measurement service is unreachable",
		}
	}

	body, contentType, err := e.buildForm(req, contentTypes)
	if err != nil {
		return outcome.UploadOutcome{
			Status:  outcome.FileError,
			Message: err.Error(),
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+req.Endpoint, body)
	if err != nil {
		return outcome.UploadOutcome{
			Status:  outcome.UnknownError,
			Message: err.Error(),
		}
	}
	httpReq.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := e.client.Do(httpReq)
	if err != nil {
		result := outcome.FromError(err)
		e.logger.Warn("Upload request failed",
			"endpoint", req.Endpoint,
			"status", result.Status.String(),
			"error", err)
		return result
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return outcome.FromError(err)
	}

	result := outcome.FromStatus(resp.StatusCode, respBody)
	e.logger.Info("Upload completed",
		"endpoint", req.Endpoint,
		"http_status", resp.StatusCode,
		"status", result.Status.String(),
		"duration_ms", time.Since(start).Milliseconds())
	return result
}

// buildForm assembles the multipart body: one part per file plus metadata
// fields. File parts carry size, name and content type alongside so the
// service can verify the transfer. Content types come from validation.
func (e *Executor) buildForm(req Request, contentTypes map[string]string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, part := range sortedParts(req.Files) {
		path := req.Files[part]

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}

		contentType := contentTypes[part]
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if e.processor != nil && e.processor.Enabled() {
			data, err = e.processor.Process(data)
			if err != nil {
				return nil, "", fmt.Errorf("process %s: %w", filepath.Base(path), err)
			}
			// Re-encoded output is always JPEG
			contentType = "image/jpeg"
		}

		fw, err := createFilePart(writer, part, filepath.Base(path), contentType)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(data); err != nil {
			return nil, "", err
		}

		writer.WriteField(part+"Size", strconv.Itoa(len(data)))
		writer.WriteField(part+"Name", filepath.Base(path))
	}

	for key, value := range req.Fields {
		writer.WriteField(key, value)
	}

	writer.WriteField("timestamp", time.Now().UTC().Format(time.RFC3339))
	writer.WriteField("correlationId", uuid.NewString())
	if e.deviceID != "" {
		writer.WriteField("deviceId", e.deviceID)
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

func (e *Executor) toRecord(req Request) cache.Record {
	rec := cache.Record{
		Endpoint:  req.Endpoint,
		Files:     req.Files,
		Fields:    req.Fields,
		OwnerRef:  req.OwnerRef,
		CreatedAt: time.Now().UTC(),
	}
	if e.clock != nil {
		rec.TimeConfidence = string(e.clock.Confidence())
	}
	return rec
}

// createFilePart writes a form-data file part with an explicit content type
func createFilePart(w *multipart.Writer, field, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}

// sortedParts keeps the form deterministic for the service and the tests
func sortedParts(files map[string]string) []string {
	parts := make([]string, 0, len(files))
	for part := range files {
		parts = append(parts, part)
	}
	sort.Strings(parts)
	return parts
}
