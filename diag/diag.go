// Package diag holds the process-wide diagnostic hooks the simulation core
// reports through. There are exactly two kinds of output: trace messages and
// assertion failures. The core has no recoverable errors; everything that
// goes wrong is a programming or capacity fault and lands in AssertFailed.
package diag

import (
	"fmt"
	"log"
	"runtime"
	"sync"
)

// TraceFunc receives one fully formatted diagnostic message. It must not
// fault from within itself.
type TraceFunc func(msg string)

// AssertFailedFunc receives the failed expression, an optional message and
// the call site. Returning true halts the process (panic); returning false
// lets the caller continue, which is only useful in tests.
type AssertFailedFunc func(expr, msg, file string, line int) bool

var (
	mu           sync.RWMutex
	trace        TraceFunc        = func(msg string) { log.Println(msg) }
	assertFailed AssertFailedFunc = func(expr, msg, file string, line int) bool {
		Tracef("%s:%d: (%s) %s", file, line, expr, msg)
		return true
	}
)

// SetTrace installs the trace sink. A nil sink restores the default (std log).
func SetTrace(fn TraceFunc) {
	mu.Lock()
	defer mu.Unlock()
	if fn == nil {
		fn = func(msg string) { log.Println(msg) }
	}
	trace = fn
}

// SetAssertFailed installs the assertion-failure sink. A nil sink restores
// the default, which traces the failure and halts.
func SetAssertFailed(fn AssertFailedFunc) {
	mu.Lock()
	defer mu.Unlock()
	if fn == nil {
		fn = func(expr, msg, file string, line int) bool {
			Tracef("%s:%d: (%s) %s", file, line, expr, msg)
			return true
		}
	}
	assertFailed = fn
}

// Tracef formats a message and hands it to the trace sink.
func Tracef(format string, args ...any) {
	mu.RLock()
	fn := trace
	mu.RUnlock()
	fn(fmt.Sprintf(format, args...))
}

// Assert checks an invariant. On failure it reports expr and msg to the
// assertion sink together with the caller's file:line, then panics unless
// the sink votes to continue.
func Assert(cond bool, expr, msg string) {
	if cond {
		return
	}
	file, line := caller()
	mu.RLock()
	fn := assertFailed
	mu.RUnlock()
	if fn(expr, msg, file, line) {
		panic(fmt.Sprintf("%s:%d: assertion failed: (%s) %s", file, line, expr, msg))
	}
}

// Assertf is Assert with a formatted message.
func Assertf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}
	Assert(false, expr, fmt.Sprintf(format, args...))
}

func caller() (string, int) {
	// skip caller -> Assert -> user code; Assertf adds one more frame but
	// reporting the Assert call site there is close enough.
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???", 0
	}
	return file, line
}
