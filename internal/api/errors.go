package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoSession is returned when an authenticated call is attempted with no
// token held. No network I/O happens in that case.
var ErrNoSession = errors.New("no session token held")

// Error is a non-2xx response from the remote API.
type Error struct {
	Status  int    // HTTP status code
	Message string // server-provided message, or a generic fallback
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// IsAuthFailure reports whether err is an API error with a 401/403 status.
func IsAuthFailure(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		apiErr.Message = parsed.Error
	}
	return apiErr
}
