package outcome

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

func TestFromStatus_Classification(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want Kind
	}{
		{"200 with envelope", 200, `{"data":{"id":"m1"}}`, Success},
		{"201 with bare object", 201, `{"id":"m1"}`, Success},
		{"200 with unparseable body", 200, `<html>oops</html>`, ServerError},
		{"200 with empty body", 200, ``, ServerError},
		{"413 is a file error", 413, ``, FileError},
		{"415 is a file error", 415, ``, FileError},
		{"500 is a server error", 500, `{"error":"boom"}`, ServerError},
		{"502 is a server error", 502, ``, ServerError},
		{"404 is a client error", 404, ``, ClientError},
		{"400 is a client error", 400, ``, ClientError},
		{"401 is a client error", 401, ``, ClientError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromStatus(tt.code, []byte(tt.body))
			if got.Status != tt.want {
				t.Errorf("FromStatus(%d) = %v, want %v", tt.code, got.Status, tt.want)
			}
			if got.Message == "" {
				t.Error("FromStatus() produced an empty message")
			}
		})
	}
}

func TestFromStatus_EnvelopeUnwrapped(t *testing.T) {
	got := FromStatus(200, []byte(`{"data":{"id":"m1","chestCircumference":98.5}}`))
	if got.Status != Success {
		t.Fatalf("FromStatus() = %v, want Success", got.Status)
	}
	if got.Payload["id"] != "m1" {
		t.Errorf("Payload[id] = %v, want m1", got.Payload["id"])
	}
	if got.Payload["chestCircumference"] != 98.5 {
		t.Errorf("Payload[chestCircumference] = %v, want 98.5", got.Payload["chestCircumference"])
	}
}

func TestFromStatus_NonObjectDataFallsBack(t *testing.T) {
	// A scalar under "data" is not an envelope we can unwrap; the
	// top-level object is still a valid success payload
	got := FromStatus(200, []byte(`{"data":"ok"}`))
	if got.Status != Success {
		t.Fatalf("FromStatus() = %v, want Success", got.Status)
	}
	if got.Payload["data"] != "ok" {
		t.Errorf("Payload[data] = %v, want ok", got.Payload["data"])
	}
}

func TestFromStatus_BareBodyFallback(t *testing.T) {
	got := FromStatus(200, []byte(`{"id":"u7","email":"a@b.c"}`))
	if got.Status != Success {
		t.Fatalf("FromStatus() = %v, want Success", got.Status)
	}
	if got.Payload["id"] != "u7" {
		t.Errorf("Payload[id] = %v, want u7 (raw body fallback)", got.Payload["id"])
	}
}

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"data object", `{"data":{"id":"1"}}`, `{"id":"1"}`},
		{"data array", `{"data":[{"id":"1"}]}`, `[{"id":"1"}]`},
		{"no data key", `{"id":"1"}`, `{"id":"1"}`},
		{"null data", `{"data":null,"id":"1"}`, `{"data":null,"id":"1"}`},
		{"string data", `{"data":"ok"}`, `{"data":"ok"}`},
		{"numeric data", `{"data":42,"id":"1"}`, `{"data":42,"id":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnwrapEnvelope([]byte(tt.body))
			if err != nil {
				t.Fatalf("UnwrapEnvelope() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("UnwrapEnvelope() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := UnwrapEnvelope([]byte("not json")); err == nil {
		t.Error("UnwrapEnvelope() expected error for invalid JSON")
	}
}

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestFromError_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"context deadline", context.DeadlineExceeded, Timeout},
		{"wrapped deadline", fmt.Errorf("do request: %w", context.DeadlineExceeded), Timeout},
		{"net timeout", fakeTimeoutError{}, Timeout},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, NetworkError},
		{"dns error", &net.DNSError{Name: "api.example"}, NetworkError},
		{"url error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("EOF")}, NetworkError},
		{"anything else", errors.New("mystery"), UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			if got.Status != tt.want {
				t.Errorf("FromError(%v) = %v, want %v", tt.err, got.Status, tt.want)
			}
			if got.Message == "" {
				t.Error("FromError() produced an empty message")
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	retryable := []Kind{Offline, ServiceDown, NetworkError, Timeout}
	terminal := []Kind{Success, ServerError, ClientError, FileError, UnknownError}

	for _, k := range retryable {
		if !Retryable(k) {
			t.Errorf("Retryable(%v) = false, want true", k)
		}
	}
	for _, k := range terminal {
		if Retryable(k) {
			t.Errorf("Retryable(%v) = true, want false", k)
		}
	}
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		kind Kind
		want RetryStrategy
	}{
		{Success, RetryNone},
		{ClientError, RetryNone},
		{FileError, RetryNone},
		{ServerError, RetryNone},
		{UnknownError, RetryNone},
		{ServiceDown, RetryAlternate},
		{Timeout, RetryImmediate},
		{Offline, RetryCache},
		{NetworkError, RetryCache},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := StrategyFor(UploadOutcome{Status: tt.kind})
			if got != tt.want {
				t.Errorf("StrategyFor(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}
