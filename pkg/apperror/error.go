package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable, client-facing error classification.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR"
	KindConflict        Kind = "CONFLICT"
	KindNotFound        Kind = "NOT_FOUND"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindUpstream        Kind = "UPSTREAM_ERROR"
	KindInternal        Kind = "INTERNAL_ERROR"
	KindRateLimited     Kind = "RATE_LIMITED"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

// Unauthorized is for a missing or invalid credential.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, message, nil)
}

// Forbidden is for an authenticated caller whose role does not permit the operation.
func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindUnauthorized, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Upstream(message string, err error) *AppError {
	return New(http.StatusBadGateway, KindUpstream, message, err)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindRateLimited, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the Kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
