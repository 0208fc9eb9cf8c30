package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handlerSlot boxes the installed handler so it can be swapped atomically.
type handlerSlot struct {
	h ErrorHandler
}

var current atomic.Pointer[handlerSlot]

// SetHandler installs h as the process-wide handler. Passing nil restores
// a LogHandler writing to the global zap logger.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	current.Store(&handlerSlot{h: h})
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	if slot := current.Load(); slot != nil {
		return slot.h
	}
	return &LogHandler{}
}

// KindOf classifies err. Hook and panic errors have their own kinds;
// anything that is not structured is KindUnknown.
func KindOf(err error) ErrorKind {
	var (
		hookErr  *HookError
		panicErr *PanicError
		e        *Error
	)
	switch {
	case err == nil:
		return KindUnknown
	case stderrors.As(err, &hookErr):
		return KindHook
	case stderrors.As(err, &panicErr):
		return KindPanic
	case stderrors.As(err, &e):
		return e.Kind
	default:
		return KindUnknown
	}
}

// Report hands err to the installed handler, routed by its kind. A zero
// Timestamp is set to now. Unstructured errors are wrapped in an Error of
// KindUnknown.
func Report(err error) {
	if err == nil {
		return
	}
	h := Handler()
	var (
		hookErr  *HookError
		panicErr *PanicError
		e        *Error
	)
	switch {
	case stderrors.As(err, &hookErr):
		stamp(&hookErr.Timestamp)
		h.HandleHookError(hookErr)
	case stderrors.As(err, &panicErr):
		stamp(&panicErr.Timestamp)
		h.HandlePanic(panicErr)
	case stderrors.As(err, &e):
		stamp(&e.Timestamp)
		h.HandleError(e)
	default:
		h.HandleError(&Error{Kind: KindUnknown, Err: err, Timestamp: time.Now()})
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Recover reports a panic in progress as a PanicError for op. It must be
// called directly by defer:
//
//	defer errors.Recover("dom.DispatchEvent")
func Recover(op string) {
	if r := recover(); r != nil {
		Report(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack returns the stack of its caller's caller, one frame per
// function and file:line pair.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}
