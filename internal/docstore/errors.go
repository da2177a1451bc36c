package docstore

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodePermissionDenied Code = "permission-denied"
	CodeNotFound         Code = "not-found"
	CodeUnavailable      Code = "unavailable"
	CodeUnknown          Code = "unknown"
)

type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

// ErrCode extracts the store error code, defaulting to CodeUnknown for
// errors that did not originate in a store.
func ErrCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsTransient reports whether the failure is worth retrying. Permission and
// not-found failures are terminal and must surface immediately.
func IsTransient(err error) bool {
	return ErrCode(err) == CodeUnavailable
}

func IsNotFound(err error) bool {
	return ErrCode(err) == CodeNotFound
}
