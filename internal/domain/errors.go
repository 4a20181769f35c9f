package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates that caller supplied input failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden indicates that the caller may not touch a record owned by someone else.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstream indicates that a third-party API could not serve the request.
	ErrUpstream = errors.New("upstream error")
)

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(resource string, id any) *NotFoundError {
	e := &NotFoundError{Resource: resource}
	if id != nil {
		e.ID = fmt.Sprint(id)
	}
	return e
}

// ValidationError reports a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UpstreamKind classifies a third-party failure.
type UpstreamKind string

const (
	UpstreamInvalidRequest UpstreamKind = "invalid_request"
	UpstreamNotFound       UpstreamKind = "not_found"
	UpstreamRateLimited    UpstreamKind = "rate_limited"
	UpstreamUnavailable    UpstreamKind = "unavailable"
	UpstreamTimeout        UpstreamKind = "timeout"
	UpstreamFailed         UpstreamKind = "failed"
)

// UpstreamError wraps a failed call to a third-party API.
type UpstreamError struct {
	Service    string
	Kind       UpstreamKind
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Service, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Service, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// HTTPStatus is the status code a local API should answer with for this failure.
func (e *UpstreamError) HTTPStatus() int {
	switch e.Kind {
	case UpstreamInvalidRequest:
		return http.StatusBadRequest
	case UpstreamNotFound:
		return http.StatusNotFound
	case UpstreamRateLimited:
		return http.StatusTooManyRequests
	case UpstreamUnavailable:
		return http.StatusServiceUnavailable
	case UpstreamTimeout:
		return http.StatusGatewayTimeout
	}
	if e.StatusCode >= 400 && e.StatusCode < 600 {
		return e.StatusCode
	}
	return http.StatusBadGateway
}
