package api

import (
	"encoding/json"
	"fmt"

	"github.com/amani1505/tailoring-bridge/internal/outcome"
)

// decodeEnveloped decodes a response body into out, unwrapping the
// { "data": ... } envelope when present and falling back to the raw body
// otherwise. The unwrap itself lives in the outcome package so the upload
// executor and this client share one interpretation of the convention.
func decodeEnveloped(body []byte, out interface{}) error {
	inner, err := outcome.UnwrapEnvelope(body)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(inner, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
