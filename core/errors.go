package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so the endpoint can report them.
type ErrorKind int

const (
	// KindConversion covers any pipeline failure that is neither a fetch nor a parse problem.
	KindConversion ErrorKind = iota
	// KindFetch covers URL, network, HTTP status, size and browser failures.
	KindFetch
	// KindParse covers HTML parsing and content extraction failures.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindParse:
		return "parse"
	default:
		return "conversion"
	}
}

// ErrUsage marks invalid arguments rejected before any pipeline work starts.
var ErrUsage = errors.New("usage error")

// Error is a pipeline failure tagged with its kind.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// FetchError wraps err as a fetch failure.
func FetchError(err error, format string, args ...any) error {
	return &Error{Kind: KindFetch, Msg: fmt.Sprintf(format, args...), Err: err}
}

// ParseError wraps err as a parse failure.
func ParseError(err error, format string, args ...any) error {
	return &Error{Kind: KindParse, Msg: fmt.Sprintf(format, args...), Err: err}
}

// ConversionError wraps err as a generic conversion failure.
func ConversionError(err error, format string, args ...any) error {
	return &Error{Kind: KindConversion, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of err and whether it is a pipeline error at all.
func KindOf(err error) (ErrorKind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return KindConversion, false
}

type usageError struct{ msg string }

func (e *usageError) Error() string        { return e.msg }
func (e *usageError) Is(target error) bool { return target == ErrUsage }

// Usagef returns an error that matches ErrUsage and prints only the message.
func Usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
