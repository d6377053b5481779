package models

import "errors"

// ErrorKind classifies why an engine adapter failed. The registry logs the
// kind alongside each absorbed failure; it does not retry failed dispatches.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindParsing
	KindTimeout
	KindRateLimited
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParsing:
		return "parsing"
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unexpected"
	}
}

// EngineError wraps every failure an adapter can surface. Adapters must
// never panic; any failure becomes one of these.
type EngineError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *EngineError) Error() string {
	if e.Detail != "" {
		return e.Kind.String() + ": " + e.Detail
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *EngineError) Unwrap() error { return e.Err }

func NewEngineError(kind ErrorKind, detail string, cause error) *EngineError {
	return &EngineError{Kind: kind, Detail: detail, Err: cause}
}

func NetworkError(cause error) *EngineError     { return NewEngineError(KindNetwork, "", cause) }
func TimeoutError(cause error) *EngineError     { return NewEngineError(KindTimeout, "", cause) }
func RateLimitedError(detail string) *EngineError {
	return NewEngineError(KindRateLimited, detail, nil)
}
func ParsingError(detail string, cause error) *EngineError {
	return NewEngineError(KindParsing, detail, cause)
}
func UnexpectedError(detail string, cause error) *EngineError {
	return NewEngineError(KindUnexpected, detail, cause)
}

// Sentinel errors surfaced outside the EngineError taxonomy: registry and
// config invariants that callers can check with errors.Is.
var (
	ErrEngineAlreadyRegistered = errors.New("registry: engine already registered")
	ErrRegistrySealed          = errors.New("registry: cannot register after first search")
)
