// Package errors provides structured error handling for the vdom renderer.
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
	// KindHost indicates a failure reported by the host tree.
	KindHost
	// KindHook indicates a failure inside a user lifecycle hook.
	KindHook
	// KindDiff indicates a failure in the host tree differ.
	KindDiff
	// KindConfig indicates a configuration or document loading error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindHost:
		return "host"
	case KindHook:
		return "hook"
	case KindDiff:
		return "diff"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error raised by the renderer.
type Error struct {
	// Op is the operation that failed (e.g., "core.Renderer.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Component is the component type name, if applicable.
	Component string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dom.DispatchEvent").
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

// HookError represents a failure raised while the renderer was running
// user code for a component (a lifecycle hook or Render).
type HookError struct {
	// Op is the renderer entry point that was executing.
	Op string
	// Component is the type name of the component that failed.
	Component string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error. When the panic value is itself an
	// error it is stored here as well so errors.Is/As see through it.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *HookError) Error() string {
	name := e.Component
	if name == "" {
		name = "component"
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s during %s: %v", name, e.Op, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s during %s: %v", name, e.Op, e.Err)
	}
	return fmt.Sprintf("unknown error in %s during %s", name, e.Op)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the renderer.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleHookError is called when a component hook fails.
	HandleHookError(err *HookError)
}
