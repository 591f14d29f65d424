package outcome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// UnwrapEnvelope returns the inner "data" member of an envelope body, falling
// back to the whole body when no data key is present or it is not an object
// or array. List endpoints return arrays under data, so both count as
// structured. This is the one place the envelope convention is interpreted.
func UnwrapEnvelope(body []byte) (json.RawMessage, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data) > 0 && (envelope.Data[0] == '{' || envelope.Data[0] == '[') {
		return envelope.Data, nil
	}
	return json.RawMessage(body), nil
}

// FromStatus classifies an HTTP response into exactly one outcome.
// 2xx with a parseable body is the only path to Success.
func FromStatus(code int, body []byte) UploadOutcome {
	switch {
	case code >= 200 && code < 300:
		payload, err := parsePayload(body)
		if err != nil {
			return UploadOutcome{
				Status:  ServerError,
				Message: "server returned an invalid response format",
			}
		}
		return UploadOutcome{
			Status:  Success,
			Message: "upload completed",
			Payload: payload,
		}

	case code == http.StatusRequestEntityTooLarge:
		return UploadOutcome{
			Status:  FileError,
			Message: "the server rejected the file as too large",
		}

	case code == http.StatusUnsupportedMediaType:
		return UploadOutcome{
			Status:  FileError,
			Message: "the server rejected the file type",
		}

	case code >= 500:
		return UploadOutcome{
			Status:  ServerError,
			Message: fmt.Sprintf("server error (HTTP %d), try again later", code),
		}

	case code >= 400:
		return UploadOutcome{
			Status:  ClientError,
			Message: fmt.Sprintf("request rejected (HTTP %d)", code),
		}

	default:
		return UploadOutcome{
			Status:  UnknownError,
			Message: fmt.Sprintf("unexpected HTTP status %d", code),
		}
	}
}

// FromError classifies a transport-level failure into exactly one outcome
func FromError(err error) UploadOutcome {
	if err == nil {
		return UploadOutcome{Status: UnknownError, Message: "no error provided"}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return UploadOutcome{Status: Timeout, Message: "the operation timed out"}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return UploadOutcome{Status: Timeout, Message: "the operation timed out"}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return UploadOutcome{Status: NetworkError, Message: "connection failed: " + opErr.Err.Error()}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return UploadOutcome{Status: NetworkError, Message: "name resolution failed: " + dnsErr.Name}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return UploadOutcome{Status: NetworkError, Message: "request failed: " + urlErr.Err.Error()}
	}

	return UploadOutcome{Status: UnknownError, Message: err.Error()}
}

// parsePayload decodes a 2xx body through the envelope into a generic map
func parsePayload(body []byte) (map[string]interface{}, error) {
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}

	inner, err := UnwrapEnvelope(body)
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(inner, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
