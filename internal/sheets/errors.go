package sheets

import (
	"fmt"
	"net/http"
)

// TransportError is returned when a dataset cannot be read from (or a row
// cannot be sent to) the spreadsheet backend.
type TransportError struct {
	Dataset  string
	URL      string
	Status   int // 0 when no HTTP response was received
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("sheets %s: transport failure", e.Dataset)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Attempts > 1 {
		msg += fmt.Sprintf(" after %d attempts", e.Attempts)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRetryable reports whether another attempt may succeed. Network failures
// and every non-2xx status qualify.
func (e *TransportError) IsRetryable() bool {
	return e.Status < 200 || e.Status > 299
}

// RateLimited reports whether the backend answered 429.
func (e *TransportError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}
