package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrNoRecipients     = errors.New("no recipients")
	ErrResolutionFailed = errors.New("recipient resolution failed")
	ErrWriteFailed      = errors.New("notification write failed")
	ErrSource           = errors.New("recipient source error")
	ErrInsert           = errors.New("notification insert error")
	ErrTableMissing     = errors.New("target table missing")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// StoreErrorKind classifies failures reported by a persistence backend.
type StoreErrorKind int

const (
	KindGeneric StoreErrorKind = iota
	KindTableMissing
)

func (k StoreErrorKind) String() string {
	switch k {
	case KindTableMissing:
		return "table_missing"
	default:
		return "generic"
	}
}

// StoreError is the only error shape a store hands back for failed reads and writes.
type StoreError struct {
	Op   string
	Kind StoreErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Kind == KindTableMissing {
		return []error{ErrTableMissing, e.Err}
	}
	return []error{e.Err}
}

// WriteFailedError is returned when every batch of a broadcast failed.
type WriteFailedError struct {
	Attempted int
	Last      error
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("%v: %d batches failed, last error: %v", ErrWriteFailed, e.Attempted, e.Last)
}

func (e *WriteFailedError) Is(target error) bool {
	return target == ErrWriteFailed
}

func (e *WriteFailedError) Unwrap() error {
	return e.Last
}

// Validationf wraps ErrValidation with a field level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Detail returns the message a caller may show for err without leaking driver text.
func Detail(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTableMissing):
		return "notifications table does not exist"
	case errors.Is(err, ErrValidation):
		return err.Error()
	case errors.Is(err, ErrResolutionFailed):
		return ErrResolutionFailed.Error()
	case errors.Is(err, ErrNoRecipients), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return err.Error()
	default:
		var se *StoreError
		if errors.As(err, &se) {
			return se.Op + " failed"
		}
		return "internal error"
	}
}
