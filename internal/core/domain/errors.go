package domain

import "errors"

var (
	ErrConfig       = errors.New("invalid configuration")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
	ErrLoginFailed  = errors.New("login failed")
)

// StatusError is implemented by transport errors that carry an HTTP response.
// ResponseBody is the server's text, shown to users as-is.
type StatusError interface {
	error
	HTTPStatus() int
	ResponseBody() string
}
