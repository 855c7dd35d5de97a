// Package errors provides coded errors for seqview.
//
// Every failure a caller may branch on carries a [Code]:
//   - INVALID_*: malformed input (records, strands, formats, paths)
//   - OUT_OF_BOUNDS: a crop window outside the sequence (a range error)
//   - CIRCULAR_LENGTH_REQUIRED: an origin-spanning feature was compared
//     without the circular sequence length (a configuration error)
//   - FILE_NOT_FOUND, INTERNAL_ERROR
//
// Coded errors survive fmt.Errorf("%w") wrapping:
//
//	if _, err := rec.Crop(w); errors.Is(err, errors.ErrCodeOutOfBounds) {
//	    // window outside the record
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStrand Code = "INVALID_STRAND"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeOutOfBounds            Code = "OUT_OF_BOUNDS"
	ErrCodeCircularLengthRequired Code = "CIRCULAR_LENGTH_REQUIRED"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a failure with a Code. Message is meant for the user; Cause is
// the lower-level error, if any.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any coded error in err's chain has code. A decode
// failure marked INVALID_FORMAT around an INVALID_STRAND matches both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost coded error without its
// code, or err's text for uncoded errors. It returns "" for nil.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
