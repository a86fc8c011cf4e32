package exchange

import (
	"errors"
	"fmt"
)

// Kind discriminates the failures a run can end with.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindIO
	KindFileExists
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindIO:
		return "IOError"
	case KindFileExists:
		return "FileExists"
	case KindMalformedResponse:
		return "MalformedResponse"
	default:
		return "Error"
	}
}

// Error is the single error type returned by this package.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Describe renders err as a single "<Kind>: <message>" line.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return fmt.Sprintf("%s: %v", KindUnknown, err)
}
