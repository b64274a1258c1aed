package dataflows

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ConfigError reports missing or invalid configuration, such as an unset
// API token. No request is made.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// UsageError reports an invalid combination of command-line arguments.
// No request is made.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// NewUsageError wraps a message as a UsageError.
func NewUsageError(format string, args ...any) error {
	return usageErrorf(format, args...)
}

// TransportError reports a failed request. StatusCode is zero when the
// request never produced a response. URL is already redacted.
type TransportError struct {
	URL        string
	StatusCode int
	Reason     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP Error %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("Request failed: %s", e.Reason)
}

func (e *TransportError) Unwrap() error { return e.Err }

// reasonPhrase extracts "Not Found" from "404 Not Found".
func reasonPhrase(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(status), strconv.Itoa(code)))
	if reason == "" {
		reason = http.StatusText(code)
	}
	return reason
}
