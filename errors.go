// Package trackvia is a client for the TrackVia HTTP API: authentication,
// view/record/file CRUD, and user/app administration. Expired access tokens
// are refreshed and the failed call retried once, transparently to the caller.
package trackvia

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotAuthorized is returned when an operation requires a stored refresh
// token and none is present — Refresh before Authorize, for example. It is a
// purely local failure and never carries a service error body.
var ErrNotAuthorized = errors.New("trackvia: not authorized (no prior Authorize)")

// Error names the service uses for an expired or revoked access token.
// Either one triggers a single refresh-and-retry cycle.
const (
	errNameInvalidGrant = "invalid_grant"
	errNameInvalidToken = "invalid_token"
)

// HTTPError is a non-2xx response whose body could not be parsed as the
// service's structured error JSON. It is surfaced unchanged — callers see
// the raw status and body, not an APIError.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("trackvia: HTTP %d", e.StatusCode)
	}

	return fmt.Sprintf("trackvia: HTTP %d: %s", e.StatusCode, e.Body)
}

// APIError is a structured error reported by the service. It carries the
// full diagnostic payload from the response body plus the underlying
// HTTP failure as its cause. APIErrors are terminal — they are never
// retried on the caller's behalf.
type APIError struct {
	StatusCode  int
	Errors      []string // field-level error descriptions
	Message     string
	Name        string // effective name: body `name`, falling back to `error`
	Code        string
	StackTrace  string
	Description string

	cause error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("trackvia: %s (%s): %s", e.Name, e.Code, e.Message)
	case e.Description != "":
		return fmt.Sprintf("trackvia: %s (%s): %s", e.Name, e.Code, e.Description)
	default:
		return fmt.Sprintf("trackvia: %s (HTTP %d)", e.Name, e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// transientAuth reports whether this error means the access token was
// rejected and a refresh-and-retry is worth one attempt.
func (e *APIError) transientAuth() bool {
	return e.Name == errNameInvalidGrant || e.Name == errNameInvalidToken
}

// errorBody mirrors the service's error JSON exactly. Any field may be
// absent; `error` is an alternate name field some endpoints use instead
// of `name`.
type errorBody struct {
	Errors      []string `json:"errors"`
	Message     string   `json:"message"`
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	StackTrace  string   `json:"stackTrace"`
	ErrorName   string   `json:"error"`
	Description string   `json:"description"`
}

// empty reports whether no recognized field was present — an arbitrary
// JSON document decodes "successfully" into errorBody, so field presence
// is the real parseability signal.
func (b *errorBody) empty() bool {
	return len(b.Errors) == 0 && b.Message == "" && b.Name == "" &&
		b.Code == "" && b.StackTrace == "" && b.ErrorName == "" && b.Description == ""
}

// classifyResponse turns a non-2xx response into the error the caller sees.
// A parseable structured body becomes an *APIError with the effective name
// resolved; anything else is an *HTTPError carrying the raw status and body.
func classifyResponse(statusCode int, body []byte) error {
	httpErr := &HTTPError{StatusCode: statusCode, Body: body}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.empty() {
		return httpErr
	}

	name := eb.Name
	if name == "" {
		name = eb.ErrorName
	}

	return &APIError{
		StatusCode:  statusCode,
		Errors:      eb.Errors,
		Message:     eb.Message,
		Name:        name,
		Code:        eb.Code,
		StackTrace:  eb.StackTrace,
		Description: eb.Description,
		cause:       httpErr,
	}
}

// isNotFound reports whether err is a service-side 404 for the addressed
// resource. Used by Record to map absence to a nil result.
func isNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404 || apiErr.Code == "404"
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 404
	}

	return false
}
