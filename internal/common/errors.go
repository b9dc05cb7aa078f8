package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind classifies failures for HTTP mapping
type ErrorKind string

const (
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindValidation         ErrorKind = "VALIDATION_ERROR"
	KindConflict           ErrorKind = "CONFLICT"
	KindUnauthorized       ErrorKind = "UNAUTHORIZED"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindTransactionFailure ErrorKind = "TRANSACTION_FAILURE"
	KindUpstream           ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindRateLimited        ErrorKind = "RATE_LIMITED"
	KindInternal           ErrorKind = "INTERNAL"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// AppError is a classified application error
type AppError struct {
	Kind    ErrorKind
	Message string
	Details map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind
func (e *AppError) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstream:
		return http.StatusServiceUnavailable
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Validation(field, message string) *AppError {
	return &AppError{Kind: KindValidation, Message: "Validation failed", Details: map[string]string{field: message}}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// TransactionFailure marks a rolled-back lifecycle transaction
func TransactionFailure(err error) *AppError {
	return &AppError{Kind: KindTransactionFailure, Message: "transaction failed and was rolled back", Err: err}
}

func Upstream(service string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: fmt.Sprintf("%s unavailable", service), Err: err}
}

func RateLimited(message string) *AppError {
	return &AppError{Kind: KindRateLimited, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for unclassified errors
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// FromDBError classifies a store error for the given resource
func FromDBError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(resource)
	}
	if notFound := UnknownTenant(err); notFound != nil {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &AppError{Kind: KindConflict, Message: fmt.Sprintf("%s already exists", resource), Err: err}
	}
	return Internal(fmt.Sprintf("failed to access %s", resource), err)
}

// UnknownTenant maps a write rejected by a tenant_id foreign key to NotFound.
// It returns nil for any other error.
func UnknownTenant(err error) *AppError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolation {
		return nil
	}
	if !strings.HasSuffix(pgErr.ConstraintName, "tenant_id_fkey") {
		return nil
	}
	return &AppError{Kind: KindNotFound, Message: "tenant not found", Err: err}
}
