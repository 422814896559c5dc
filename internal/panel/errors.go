package panel

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"strmctl/internal/services"
)

// ErrUnavailable marks transport failures (connection refused, DNS, timeout).
var ErrUnavailable = services.ErrUnavailable

// StatusError is returned when the backend answers with a non-2xx status.
// Its message is the raw response body so server text reaches the user as-is.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	text := http.StatusText(e.StatusCode)
	if text == "" {
		return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s returned %d %s", e.Endpoint, e.StatusCode, text)
}

// Is lets callers classify status errors with the services markers.
func (e *StatusError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case services.ErrServer:
		return true
	case services.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnavailable reports whether err is a transport-level failure.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a
// StatusError.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
