package core

import (
	"github.com/go-drift/vdom/pkg/dom"
)

// InstanceID indexes an instance in its renderer's arena. The zero value
// means "no instance".
type InstanceID uint64

// Instance is a live component: the component value plus the renderer's
// bookkeeping for it.
//
// Delegation links are stored as ids. Each instance has at most one
// delegate (the instance producing its output) and at most one owner (the
// instance it produces output for), so the links form a forest.
type Instance struct {
	id        InstanceID
	renderer  *Renderer
	typ       *ComponentType
	component Component

	props   Props
	state   State
	context Context
	prev    snapshot

	base     dom.Node
	nextBase dom.Node
	delegate InstanceID
	owner    InstanceID

	disabled bool
	dirty    bool
	ref      dom.Ref
	key      any

	renderCallbacks []func()
	disposers       []func()
}

// snapshot holds values staged while an update is in flight.
type snapshot struct {
	props    Props
	state    State
	context  Context
	hasProps bool
	hasState bool
	hasCtx   bool
}

func (s *snapshot) clear() {
	*s = snapshot{}
}

// NewInstance allocates an instance of typ. Pools call it to create
// instances; the renderer assigns the id when the instance is first linked.
func NewInstance(typ *ComponentType, props Props, ctx Context) *Instance {
	comp := typ.New()
	inst := &Instance{
		typ:       typ,
		component: comp,
		props:     props,
		context:   ctx,
	}
	if init, ok := comp.(StateInitializer); ok {
		inst.state = init.InitialState(props, ctx)
	}
	if binder, ok := comp.(interface{ bind(*Instance) }); ok {
		binder.bind(inst)
	}
	return inst
}

// ID returns the instance's arena id, or zero if it is not tracked.
func (i *Instance) ID() InstanceID { return i.id }

// Type returns the instance's constructor identity.
func (i *Instance) Type() *ComponentType { return i.typ }

// Component returns the user component value.
func (i *Instance) Component() Component { return i.component }

// Props returns the current props.
func (i *Instance) Props() Props { return i.props }

// State returns the current state.
func (i *Instance) State() State { return i.state }

// Context returns the current context.
func (i *Instance) Context() Context { return i.context }

// Output returns the host node currently representing the instance.
func (i *Instance) Output() dom.Node { return i.base }

// Key returns the stored identity token.
func (i *Instance) Key() any { return i.key }

// Dirty reports whether a deferred render is pending.
func (i *Instance) Dirty() bool { return i.dirty }

// Disabled reports whether the instance is ignoring updates, either while
// its props are being assigned or after teardown.
func (i *Instance) Disabled() bool { return i.disabled }

// Delegate returns the instance producing this instance's output, if any.
func (i *Instance) Delegate() *Instance {
	if i.renderer == nil {
		return nil
	}
	return i.renderer.lookup(i.delegate)
}

// Owner returns the instance this instance produces output for, if any.
func (i *Instance) Owner() *Instance {
	if i.renderer == nil {
		return nil
	}
	return i.renderer.lookup(i.owner)
}

func (i *Instance) name() string {
	return i.typ.String()
}

// previous returns the staged pre-update values, falling back to the
// current ones.
func (i *Instance) previous() (Props, State, Context) {
	props, state, ctx := i.props, i.state, i.context
	if i.prev.hasProps {
		props = i.prev.props
	}
	if i.prev.hasState {
		state = i.prev.state
	}
	if i.prev.hasCtx {
		ctx = i.prev.context
	}
	return props, state, ctx
}

func (i *Instance) stageProps() {
	if !i.prev.hasProps {
		i.prev.props, i.prev.hasProps = i.props, true
	}
}

func (i *Instance) stageState() {
	if !i.prev.hasState {
		i.prev.state, i.prev.hasState = i.state, true
	}
}

func (i *Instance) stageContext() {
	if !i.prev.hasCtx {
		i.prev.context, i.prev.hasCtx = i.context, true
	}
}

// drainRenderCallbacks invokes queued callbacks last-in-first-out.
func (i *Instance) drainRenderCallbacks() {
	for len(i.renderCallbacks) > 0 {
		last := len(i.renderCallbacks) - 1
		cb := i.renderCallbacks[last]
		i.renderCallbacks = i.renderCallbacks[:last]
		cb()
	}
}

func (i *Instance) runDisposers() {
	for n := len(i.disposers) - 1; n >= 0; n-- {
		if i.disposers[n] != nil {
			i.disposers[n]()
		}
	}
	i.disposers = nil
}
