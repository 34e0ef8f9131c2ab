package github

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel classes for upstream failures. Callers match them with errors.Is
// to decide which actionable message to show (credential problem vs repository
// access problem vs rate limiting).
var (
	ErrUnauthorized = errors.New("invalid or expired credential")
	ErrNotFound     = errors.New("repository not found or inaccessible")
	ErrRateLimited  = errors.New("rate limited or access denied")
)

// APIError is a non-success response from the GitHub API, classified by
// status code and carrying the upstream reason for display.
type APIError struct {
	StatusCode int
	Reason     string

	class error
}

func (e *APIError) Error() string {
	switch {
	case e.class != nil && e.Reason != "":
		return fmt.Sprintf("github api error %d: %s (%s)", e.StatusCode, e.class.Error(), e.Reason)
	case e.class != nil:
		return fmt.Sprintf("github api error %d: %s", e.StatusCode, e.class.Error())
	case e.Reason != "":
		return fmt.Sprintf("github api error %d: %s", e.StatusCode, e.Reason)
	default:
		return fmt.Sprintf("github api error %d", e.StatusCode)
	}
}

func (e *APIError) Is(target error) bool {
	return e.class != nil && target == e.class
}

func classifyStatus(statusCode int, reason string) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Reason: reason}
	switch statusCode {
	case http.StatusUnauthorized:
		apiErr.class = ErrUnauthorized
	case http.StatusNotFound:
		apiErr.class = ErrNotFound
	case http.StatusForbidden:
		apiErr.class = ErrRateLimited
	}
	return apiErr
}
