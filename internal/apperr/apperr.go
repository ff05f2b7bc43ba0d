// Package apperr classifies request failures and maps them to HTTP statuses.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the failure category of an Error.
type Kind string

const (
	KindInput    Kind = "input"
	KindNotFound Kind = "not_found"
	KindUpstream Kind = "upstream"
	KindConfig   Kind = "config"
	KindInternal Kind = "internal"
)

// Error is a categorized failure. Status carries the upstream HTTP status
// for KindUpstream when one is known.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "unknown error"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func Input(message string) *Error {
	return &Error{Kind: KindInput, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// Upstream reports a failed external call. status is 0 when the call never
// produced a response.
func Upstream(status int, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the category of err, or KindInternal for uncategorized errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusOf maps err to an HTTP status. fallback is used for upstream failures
// without a known status and for uncategorized errors.
func StatusOf(err error, fallback int) int {
	var e *Error
	if !errors.As(err, &e) {
		return fallback
	}
	switch e.Kind {
	case KindInput, KindConfig:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		if e.Status >= 400 && e.Status <= 599 {
			return e.Status
		}
		return fallback
	default:
		return http.StatusInternalServerError
	}
}
