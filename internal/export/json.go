package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/amani1505/tailoring-bridge/internal/api"
)

// jsonReport is the JSON export envelope
type jsonReport struct {
	GeneratedAt  time.Time         `json:"generatedAt"`
	User         *api.User         `json:"user,omitempty"`
	Count        int               `json:"count"`
	Measurements []api.Measurement `json:"measurements"`
}

// WriteJSON writes measurement history as indented JSON
func WriteJSON(w io.Writer, user *api.User, measurements []api.Measurement) error {
	report := jsonReport{
		GeneratedAt:  time.Now().UTC(),
		User:         user,
		Count:        len(measurements),
		Measurements: measurements,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
