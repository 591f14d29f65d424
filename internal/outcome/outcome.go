// Package outcome defines the closed taxonomy an upload attempt resolves to
// and the pure classifiers that produce it. No raw error or status code may
// reach callers of the upload executor without passing through here.
package outcome

// Kind is the closed set of terminal classifications for an upload attempt
type Kind int

const (
	Success Kind = iota
	Offline
	ServiceDown
	NetworkError
	ServerError
	ClientError
	Timeout
	FileError
	UnknownError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Offline:
		return "offline"
	case ServiceDown:
		return "service_down"
	case NetworkError:
		return "network_error"
	case ServerError:
		return "server_error"
	case ClientError:
		return "client_error"
	case Timeout:
		return "timeout"
	case FileError:
		return "file_error"
	case UnknownError:
		return "unknown_error"
	default:
		return "unknown"
	}
}

// UploadOutcome is the single classified result of one upload attempt.
// Exactly one is produced per attempt and it is never mutated afterwards.
type UploadOutcome struct {
	Status  Kind
	Message string
	Payload map[string]interface{} // Parsed response body for Success, nil otherwise
}

// Retryable reports whether a failure of this kind is eligible for the
// offline-cache hand-off. The set is fixed and independent of caller context.
func Retryable(k Kind) bool {
	switch k {
	case Offline, ServiceDown, NetworkError, Timeout:
		return true
	default:
		return false
	}
}
