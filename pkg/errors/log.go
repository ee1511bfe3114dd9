package errors

import (
	"fmt"
	"os"
)

// LogHandler is a Handler that logs to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a RuntimeError to stderr.
func (h *LogHandler) HandleError(err *RuntimeError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[loom %s] %s: %v (%s)\n", err.Kind, err.Op, err.Err, err.Timestamp.Format("15:04:05.000"))
	} else {
		fmt.Fprintf(os.Stderr, "[loom %s] %s: %v\n", err.Kind, err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[loom panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[loom panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}
