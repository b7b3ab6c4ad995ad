package service

import (
	"errors"
	"sync/atomic"

	"github.com/edublog/edublog-client/internal/core/domain"
)

const (
	titleError   = "Error"
	titleSuccess = "Success"
)

// messageFor picks the text shown to the user for a failed operation: the
// server's response body when there is one, validation details for bad
// input, fallback otherwise.
func messageFor(err error, fallback string) string {
	var se domain.StatusError
	if errors.As(err, &se) && se.ResponseBody() != "" {
		return se.ResponseBody()
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message()
	}
	return fallback
}

// loading mirrors a screen's busy indicator. It is cleared on every exit
// path, success or failure.
type loading struct {
	n atomic.Int32
}

func (l *loading) start() func() {
	l.n.Add(1)
	return func() { l.n.Add(-1) }
}

// Loading reports whether an operation is in progress.
func (l *loading) Loading() bool {
	return l.n.Load() > 0
}
