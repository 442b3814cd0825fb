package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthorized is returned for 401 responses.  It forces the session into
// its logout path wherever it surfaces.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned for 404 responses
var ErrNotFound = errors.New("not found")

// NetworkError wraps a transport-level failure (DNS, refused connection, timeout)
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response carrying a backend-provided message.
// Validation failures arrive as per-field error lists; Message concatenates
// them into a single display string.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func apiErrorFrom(resp *resty.Response) error {
	msg := errorMessage(resp.Body())
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}

	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    msg,
	}
}

// errorMessage flattens a backend error body into one line.  The API answers
// either {"detail": "..."}, {"error": "..."} or a per-field validation map
// like {"username": ["already taken"]}.
func errorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}

	if detail, ok := payload["detail"].(string); ok {
		return detail
	}
	if msg, ok := payload["error"].(string); ok {
		return msg
	}

	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		for _, msg := range stringValues(payload[field]) {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return strings.Join(parts, "; ")
}

func stringValues(v any) []string {
	switch value := v.(type) {
	case string:
		return []string{value}
	case []any:
		var out []string
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
