package orchestrator

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where an invocation failed.
type ErrorKind int

const (
	// InputError: the request text was empty after trimming. Reported
	// synchronously; no worker is started.
	InputError ErrorKind = iota + 1
	// ServiceError: the paraphrase backend failed. Rules never ran.
	ServiceError
	// CorrectionError: the grammar backend failed. The rule output is
	// discarded.
	CorrectionError
	// InternalError: an unexpected panic outside the two backend calls.
	InternalError
)

func (k ErrorKind) String() string {
	switch k {
	case InputError:
		return "input_error"
	case ServiceError:
		return "service_error"
	case CorrectionError:
		return "correction_error"
	case InternalError:
		return "internal_error"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// ErrBusy is returned by TryRun while another invocation is in flight.
var ErrBusy = errors.New("humanizer is busy with another request")

// Error is a failed invocation. Detail keeps the underlying failure text so
// callers can show diagnostics.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Detail: err.Error(), Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the user-facing description of the failure, detail included.
func (e *Error) Message() string {
	switch e.Kind {
	case InputError:
		return "Please enter some text first."
	case ServiceError:
		return fmt.Sprintf("Error: could not paraphrase the text. Please check your connection or the model service and try again.\n\nDetails: %s", e.Detail)
	case CorrectionError:
		return fmt.Sprintf("Error: grammar correction failed.\n\nDetails: %s", e.Detail)
	default:
		return fmt.Sprintf("Error: could not process text.\n\nDetails: %s", e.Detail)
	}
}

// KindOf returns the ErrorKind carried by err, or 0 when err is not an
// *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
