package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind buckets every failure the client can surface into a small
// taxonomy callers can switch on without inspecting status codes.
type Kind string

const (
	KindNetwork        Kind = "NETWORK"
	KindAuthentication Kind = "AUTHENTICATION"
	KindAuthorization  Kind = "AUTHORIZATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindValidation     Kind = "VALIDATION"
	KindServer         Kind = "SERVER"
	KindUnknown        Kind = "UNKNOWN"
)

// APIError is the single error type returned by Client operations.
// Status is zero for transport-level failures.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Context map[string]any
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Retryable reports whether retrying the same request could succeed.
// Only transport failures and 5xx responses qualify; every 4xx is a
// caller problem that a retry cannot fix.
func (e *APIError) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuthentication
	case status == http.StatusForbidden:
		return KindAuthorization
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest:
		return KindValidation
	case status >= 400 && status < 500:
		// 409, 429 and friends are caller problems but not validation
		return KindUnknown
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}
