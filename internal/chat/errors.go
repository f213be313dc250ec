package chat

import "fmt"

type ErrorKind int

const (
	FailedToRequest ErrorKind = iota
	Non200Response
	MalformedResponse
	EmptyResponse
)

func (k ErrorKind) String() string {
	switch k {
	case FailedToRequest:
		return "failed to request"
	case Non200Response:
		return "non-200 response"
	case MalformedResponse:
		return "malformed response"
	case EmptyResponse:
		return "empty response"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by every provider when a chat round trip fails.
type Error struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Provider + ": " + e.Kind.String()
	}
	return e.Provider + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
