package core

import (
	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/dom"
)

// RenderMode selects what AssignProps and RenderComponent do after
// updating an instance.
type RenderMode int

const (
	// NoRender assigns props without rendering.
	NoRender RenderMode = iota
	// SyncRender renders immediately.
	SyncRender
	// ForceRender renders immediately and bypasses ShouldUpdate.
	ForceRender
	// AsyncRender hands the instance to the scheduler unless synchronous
	// updates are enabled or the instance has never rendered.
	AsyncRender
)

func (m RenderMode) String() string {
	switch m {
	case NoRender:
		return "none"
	case SyncRender:
		return "sync"
	case ForceRender:
		return "force"
	case AsyncRender:
		return "async"
	default:
		return "unknown"
	}
}

// Options configures a Renderer. All hooks are optional.
type Options struct {
	// SyncComponentUpdates renders AsyncRender updates immediately instead
	// of deferring them to the scheduler.
	SyncComponentUpdates bool
	// BeforeUnmount observes every instance about to be torn down.
	BeforeUnmount func(inst *Instance)
	// AfterMount observes every instance after its DidMount hook slot.
	AfterMount func(inst *Instance)
	// AfterUpdate observes every instance after its DidUpdate hook slot.
	AfterUpdate func(inst *Instance)
	// Event transforms events before they reach handlers. Returning nil
	// keeps the original event.
	Event func(e *dom.Event) *dom.Event
	// Logger receives debug entries. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns options with synchronous component updates enabled.
func DefaultOptions() Options {
	return Options{SyncComponentUpdates: true}
}

// Option configures the collaborators of a Renderer.
type Option func(*Renderer)

// WithDiffer replaces the default host tree differ.
func WithDiffer(d HostDiffer) Option {
	return func(r *Renderer) { r.differ = d }
}

// WithPool replaces the default instance recycler.
func WithPool(p Pool) Option {
	return func(r *Renderer) { r.pool = p }
}

// WithScheduler replaces the default render queue.
func WithScheduler(s Scheduler) Option {
	return func(r *Renderer) { r.scheduler = s }
}
