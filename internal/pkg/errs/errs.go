package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrTokenMalformed         = errors.New("token is malformed")
	ErrTokenExpired           = errors.New("token is expired")
	ErrForbidden              = errors.New("forbidden")
	ErrPreconditionFailed     = errors.New("precondition failed")
	ErrConflict               = errors.New("conflict")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInternal               = errors.New("internal error")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports that an object addressed by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that violates a domain invariant.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// NotAuthenticatedError reports a caller without a usable identity.
// Reason is part of the client-facing message and must not reveal which check failed.
type NotAuthenticatedError struct {
	Reason string
	Cause  error
}

func NewNotAuthenticatedError(reason string) *NotAuthenticatedError {
	return &NotAuthenticatedError{Reason: reason}
}

func NewNotAuthenticatedErrorWithCause(reason string, cause error) *NotAuthenticatedError {
	return &NotAuthenticatedError{Reason: reason, Cause: cause}
}

func (e *NotAuthenticatedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotAuthenticated, e.Reason)
}

func (e *NotAuthenticatedError) Unwrap() error {
	return ErrNotAuthenticated
}

// TokenError reports a token that failed verification. Malformed and expired tokens
// produce the same message; errors.Is still tells ErrTokenExpired from ErrTokenMalformed.
type TokenError struct {
	Expired bool
	Cause   error
}

func NewTokenMalformedError(cause error) *TokenError {
	return &TokenError{Cause: cause}
}

func NewTokenExpiredError(cause error) *TokenError {
	return &TokenError{Expired: true, Cause: cause}
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: invalid or expired token", ErrNotAuthenticated)
}

func (e *TokenError) Unwrap() []error {
	if e.Expired {
		return []error{ErrNotAuthenticated, ErrTokenExpired}
	}
	return []error{ErrNotAuthenticated, ErrTokenMalformed}
}

// ForbiddenError reports an authenticated caller that may not perform Action.
type ForbiddenError struct {
	Action string
	Reason string
}

func NewForbiddenError(action, reason string) *ForbiddenError {
	return &ForbiddenError{Action: action, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrForbidden, e.Action)
	}
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Action, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// PreconditionFailedError reports an operation refused because of the object's current state.
type PreconditionFailedError struct {
	Operation string
	State     string
}

func NewPreconditionFailedError(operation, state string) *PreconditionFailedError {
	return &PreconditionFailedError{Operation: operation, State: state}
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("cannot %s with status %s", e.Operation, e.State)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ConflictError reports a duplicate value on a unique field.
type ConflictError struct {
	ParamName string
	Cause     error
}

func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: duplicate field value: %s", ErrConflict, e.ParamName)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ConcurrentModificationError reports a failed optimistic-concurrency check.
// The caller may retry with a fresh read.
type ConcurrentModificationError struct {
	ObjectName string
	ID         any
	Version    int64
}

func NewConcurrentModificationError(objectName string, id any, version int64) *ConcurrentModificationError {
	return &ConcurrentModificationError{ObjectName: objectName, ID: id, Version: version}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s changed since version %d", ErrConcurrentModification, e.ObjectName, e.ID, e.Version)
}

func (e *ConcurrentModificationError) Unwrap() []error {
	return []error{ErrConcurrentModification, ErrConflict}
}

// InternalError wraps an unexpected infrastructure failure. Cause is never shown to clients.
type InternalError struct {
	Operation string
	Cause     error
}

func NewInternalError(operation string, cause error) *InternalError {
	return &InternalError{Operation: operation, Cause: cause}
}

func (e *InternalError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInternal, e.Operation), e.Cause)
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}
