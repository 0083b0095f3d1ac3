package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidResponse wraps payloads that decoded but failed validation.
var ErrInvalidResponse = errors.New("invalid api response")

// APIError is a non-2xx answer from the clinic API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsAPIError reports whether the API answered at all. Transport failures
// and timeouts return false.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
