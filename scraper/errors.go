package scraper

import (
	"errors"
	"fmt"
)

// ErrNetwork indicates the request never produced an HTTP response, e.g. a
// DNS or connection failure.
type ErrNetwork struct {
	Reason string
	Err    error
}

func (e ErrNetwork) Error() string {
	return fmt.Sprintf("url: %s", e.Reason)
}

func (e ErrNetwork) Unwrap() error {
	return e.Err
}

// ErrHTTPStatus indicates the server answered with a status the collector
// treats as a failure.
type ErrHTTPStatus struct {
	StatusCode int
	Err        error
}

func (e ErrHTTPStatus) Error() string {
	return fmt.Sprintf("http: %d", e.StatusCode)
}

func (e ErrHTTPStatus) Unwrap() error {
	return e.Err
}

// ErrUnknown covers every other fetch failure, including bodies that are not
// valid UTF-8.
type ErrUnknown struct {
	Err error
}

func (e ErrUnknown) Error() string {
	return "unknown error"
}

func (e ErrUnknown) Unwrap() error {
	return e.Err
}

var errInvalidUTF8 = errors.New("response body is not valid UTF-8")

// ErrorType returns the metrics label for a fetch error.
func ErrorType(err error) string {
	if err == nil {
		return "none"
	}
	var network ErrNetwork
	if errors.As(err, &network) {
		return "network"
	}
	var status ErrHTTPStatus
	if errors.As(err, &status) {
		return "http_status"
	}
	return "unknown"
}
