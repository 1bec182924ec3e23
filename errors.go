package spacekit

import (
	"errors"
	"fmt"
)

// Sentinel errors for SpaceKit operations.
var (
	// ErrForbidden is returned when a caller lacks access to the effective
	// space of a write, or explicitly queries a space outside their
	// permitted set.
	ErrForbidden = errors.New("spacekit: forbidden")

	// ErrNoCaller is returned on the write path when the calling account
	// cannot be resolved. The read path never returns it; unresolved
	// callers degrade to public visibility instead.
	ErrNoCaller = errors.New("spacekit: no caller account")

	// ErrNotInitialized is returned when transactions or queries arrive
	// before Initialize has populated the access index.
	ErrNotInitialized = errors.New("spacekit: index not initialized")

	// ErrUnknownClass is returned when a class name is not defined in the
	// class registry.
	ErrUnknownClass = errors.New("spacekit: unknown class")

	// ErrStorage is returned when a storage query behind the index fails.
	ErrStorage = errors.New("spacekit: storage error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err     error  // Underlying sentinel error
	Message string // Additional context
	SpaceID string // Space involved (if applicable)
	Account string // Account involved (if applicable)
	TxID    string // Object ID of the transaction involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithSpace adds the space involved to the error.
func (e *Error) WithSpace(spaceID string) *Error {
	e.SpaceID = spaceID
	return e
}

// WithAccount adds the account involved to the error.
func (e *Error) WithAccount(account string) *Error {
	e.Account = account
	return e
}

// WithTx adds the object ID of the offending transaction to the error.
func (e *Error) WithTx(objectID string) *Error {
	e.TxID = objectID
	return e
}

// IsForbidden checks if an error is an authorization denial.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNoCaller checks if an error is a caller resolution failure.
func IsNoCaller(err error) bool {
	return errors.Is(err, ErrNoCaller)
}

// IsNotInitialized checks if an error is due to an unpopulated index.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}
