package dom

// Event phases.
const (
	PhaseNone = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// Event is dispatched through the host tree.
type Event struct {
	Type          string
	Target        Node
	CurrentTarget Node
	Phase         int
	// Detail carries arbitrary event data.
	Detail any

	stopped bool
}

// NewEvent returns an event of the given type.
func NewEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Detail: detail}
}

// StopPropagation prevents the event from reaching further nodes.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener receives events from the host. Listeners are compared by identity
// when removed, so implementations should be pointer types.
type Listener interface {
	HandleEvent(e *Event)
}

// EventHandler is a user event callback stored in NodeData.Listeners.
type EventHandler func(e *Event)

// Ref is an identity-notification callback. It receives the attached target
// on attach and nil on detach.
//
// Func values cannot be compared, so a Ref passed directly as a prop is
// detached and re-attached on every update of its node. Wrap it with NewRef
// and pass the same handle each render to keep it attached.
type Ref func(target any)

// RefHandle gives a Ref a stable identity.
type RefHandle struct {
	fn Ref
}

// NewRef returns a handle for fn.
func NewRef(fn Ref) *RefHandle {
	return &RefHandle{fn: fn}
}

// RefOf returns the callback held by a ref prop value: a Ref, a func(any)
// or a *RefHandle. It returns nil for anything else.
func RefOf(v any) Ref {
	switch r := v.(type) {
	case Ref:
		return r
	case func(any):
		return r
	case *RefHandle:
		if r == nil {
			return nil
		}
		return r.fn
	default:
		return nil
	}
}
