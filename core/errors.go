package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific record field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError carries per-field write errors reported by the boundary
// or by local input validation.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	// the first reported field error is the failure message
	if len(err.Fields) > 0 {
		return fmt.Sprintf("%s: %s", err.Fields[0].Field, err.Fields[0].Error)
	}
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ArgumentError indicates a malformed argument rejected locally,
// before any boundary call is issued.
type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{msg}
}

func (err *ArgumentError) Error() string {
	return err.msg
}

// WriteError indicates a boundary write failure without field-level detail.
type WriteError struct {
	msg string
}

func NewWriteError(msg string) *WriteError {
	return &WriteError{msg}
}

func (err *WriteError) Error() string {
	return err.msg
}

// BoundaryError indicates the boundary call itself could not complete.
// The underlying message is propagated unchanged.
type BoundaryError struct {
	cause error
}

func NewBoundaryError(cause error) *BoundaryError {
	return &BoundaryError{cause: cause}
}

func (err *BoundaryError) Error() string {
	if err.cause == nil {
		return ""
	}
	return err.cause.Error()
}

func (err *BoundaryError) Unwrap() error {
	return err.cause
}

func IsBoundaryError(err error) bool {
	var berr *BoundaryError
	return errors.As(err, &berr)
}
