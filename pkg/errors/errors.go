// Package errors provides structured error handling for the Loom runtime.
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
	// KindProtocol indicates misuse of a tree protocol (warning, no-op).
	KindProtocol
	// KindLayout indicates a layout diagnostic such as overflowing children.
	KindLayout
	// KindList indicates a virtualized-list construction problem.
	KindList
	// KindRender indicates a painting error.
	KindRender
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic at the event-loop boundary.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindLayout:
		return "layout"
	case KindList:
		return "list"
	case KindRender:
		return "render"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// RuntimeError represents a structured error in the Loom runtime.
type RuntimeError struct {
	// Op is the operation that failed (e.g., "widgets.ModalHost.dismiss").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// PanicError represents a panic recovered at the event-loop boundary.
// Failures inside a traversal are never recovered mid-tree; the platform
// collaborator catches them at the root and decides whether to abort or
// restart the window.
type PanicError struct {
	// Op is the operation that panicked (e.g., "widget.Root.Dispatch").
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

// Handler receives errors reported by the runtime.
type Handler interface {
	// HandleError is called when an error or warning is reported.
	HandleError(err *RuntimeError)
	// HandlePanic is called when a panic is recovered at the boundary.
	HandlePanic(err *PanicError)
}
