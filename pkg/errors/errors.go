// Package errors provides structured error handling for the will runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates a mount or host initialization error.
	KindInit
	// KindRender indicates a failure while materializing a render pass.
	KindRender
	// KindFocus indicates focus could not be restored after a re-render.
	KindFocus
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindIO indicates a filesystem failure.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindFocus:
		return "focus"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// WillError represents a structured error in the will runtime.
type WillError struct {
	// Op is the operation that failed (e.g., "engine.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WillError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WillError) Unwrap() error {
	return e.Err
}

// New returns a WillError for op of the given kind wrapping err.
func New(op string, kind ErrorKind, err error) *WillError {
	return &WillError{Op: op, Kind: kind, Err: err}
}

// KindOf returns the kind of the first WillError in err's chain,
// or KindUnknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if we, ok := err.(*WillError); ok {
			return we.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindUnknown
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "term.handleKey").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WillError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
