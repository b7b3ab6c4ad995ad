package httpclient

import (
	"fmt"
	"net/http"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// RequestError is returned when the API answers with a non-2xx status. Body
// holds the response text as sent by the server; UI code shows it verbatim.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *RequestError) HTTPStatus() int { return e.Status }

func (e *RequestError) ResponseBody() string { return e.Body }

// Is maps well-known statuses onto the domain sentinels, so callers can write
// errors.Is(err, domain.ErrNotFound) without inspecting codes.
func (e *RequestError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// NetworkError wraps a transport failure: no HTTP response was received.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is returned when a successful response carries a body that is
// not the expected JSON.
type DecodeError struct {
	Method string
	Path   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decode response: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var _ domain.StatusError = (*RequestError)(nil)
