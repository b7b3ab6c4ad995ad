package apitest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// newHTTPErrorHandler renders every error as a plain-text body, which the
// app shows to the user verbatim.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.String(code, msg)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, errUserNotFound), errors.Is(err, errPostNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
