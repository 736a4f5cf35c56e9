package errors

import (
	"errors"
)

// CodedError carries a stable error code alongside a human readable message.
type CodedError struct {
	Code string
	Msg  string
	Err  error
}

func (e *CodedError) Error() string {
	return e.Msg
}

func (e *CodedError) ErrorCode() string {
	return e.Code
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// Is matches any CodedError with the same code, so wrapped sentinels compare
// equal to the bare sentinel.
func (e *CodedError) Is(target error) bool {
	var t *CodedError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

func New(code string, msg string) *CodedError {
	return &CodedError{
		Code: code,
		Msg:  msg,
	}
}

// Wrap attaches code and msg to an existing error.
func Wrap(err error, code string, msg string) *CodedError {
	return &CodedError{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

func IsErrorCode(err error, code string) bool {
	var codedErr *CodedError
	if errors.As(err, &codedErr) {
		return codedErr.Code == code
	}
	return false
}
