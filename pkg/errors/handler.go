package errors

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with Verbose=false.
	DefaultHandler Handler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *RuntimeError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	getHandler().HandleError(err)
}

// Warnf reports a formatted warning for the given operation and kind.
// Protocol misuse is reported here and then treated as a no-op by the
// caller; it never propagates as a hard failure.
func Warnf(op string, kind ErrorKind, format string, args ...any) {
	Report(&RuntimeError{
		Op:   op,
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	})
}

// ReportPanic sends a recovered panic to the global handler, capturing
// the current stack. Use only at the event-loop boundary.
func ReportPanic(op string, value any) {
	buf := make([]byte, 16*1024)
	n := runtime.Stack(buf, false)
	getHandler().HandlePanic(&PanicError{
		Op:         op,
		Value:      value,
		StackTrace: string(buf[:n]),
		Timestamp:  time.Now(),
	})
}
