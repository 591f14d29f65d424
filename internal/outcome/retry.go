package outcome

// RetryStrategy tells calling code what to do after an attempt, without
// coupling the decision to any prompt or UI mechanism.
type RetryStrategy int

const (
	// RetryNone means the attempt is terminal; do not retry automatically
	RetryNone RetryStrategy = iota
	// RetryCache means the attempt should be cached and retried later
	RetryCache
	// RetryAlternate means the alternate (lower-overhead) upload path is
	// worth trying before caching
	RetryAlternate
	// RetryImmediate means an immediate retry is reasonable
	RetryImmediate
)

func (s RetryStrategy) String() string {
	switch s {
	case RetryNone:
		return "none"
	case RetryCache:
		return "cache"
	case RetryAlternate:
		return "alternate"
	case RetryImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// StrategyFor maps an outcome to a retry strategy. Pure policy: the caller
// (interactive or automated) decides how to act on it.
func StrategyFor(o UploadOutcome) RetryStrategy {
	switch o.Status {
	case Success, ClientError, FileError, ServerError, UnknownError:
		return RetryNone
	case ServiceDown:
		return RetryAlternate
	case Timeout:
		return RetryImmediate
	case Offline, NetworkError:
		return RetryCache
	default:
		return RetryNone
	}
}
