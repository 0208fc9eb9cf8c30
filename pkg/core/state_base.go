package core

import "maps"

// Base gives a component access to its instance and the ability to update
// itself. Embed it in the component struct; the renderer binds it when the
// instance is created.
//
// Example:
//
//	type toggle struct {
//	    core.Base
//	}
//
//	func (t *toggle) InitialState(core.Props, core.Context) core.State {
//	    return core.State{"on": false}
//	}
//
//	func (t *toggle) Render(props core.Props, state core.State, _ core.Context) *core.Description {
//	    return core.H("button", core.Props{
//	        "onClick": func(*dom.Event) { t.SetState(core.State{"on": !state["on"].(bool)}, nil) },
//	    })
//	}
type Base struct {
	inst *Instance
}

func (b *Base) bind(inst *Instance) {
	b.inst = inst
}

// Instance returns the instance the component is bound to.
func (b *Base) Instance() *Instance {
	return b.inst
}

// Props returns the instance's current props.
func (b *Base) Props() Props {
	if b.inst == nil {
		return nil
	}
	return b.inst.props
}

// State returns the instance's current state.
func (b *Base) State() State {
	if b.inst == nil {
		return nil
	}
	return b.inst.state
}

// Context returns the instance's current context.
func (b *Base) Context() Context {
	if b.inst == nil {
		return nil
	}
	return b.inst.context
}

// SetState merges patch into the instance's state and requests a deferred
// render. after, if not nil, runs once that render has completed.
//
// SetState is NOT thread-safe. It must only be called from the goroutine
// that drives the renderer.
func (b *Base) SetState(patch State, after func()) {
	b.Update(func(State, Props) State { return patch }, after)
}

// Update is like SetState but computes the patch from the current state and
// props.
func (b *Base) Update(fn func(state State, props Props) State, after func()) {
	inst := b.inst
	if inst == nil {
		return
	}
	inst.stageState()
	next := make(State, len(inst.state))
	maps.Copy(next, inst.state)
	maps.Copy(next, fn(inst.state, inst.props))
	inst.state = next
	if after != nil {
		inst.renderCallbacks = append(inst.renderCallbacks, after)
	}
	if inst.renderer != nil {
		inst.renderer.enqueue(inst)
	}
}

// ForceUpdate re-renders the instance synchronously, bypassing ShouldUpdate.
// after, if not nil, runs once the render has completed.
func (b *Base) ForceUpdate(after func()) error {
	inst := b.inst
	if inst == nil || inst.renderer == nil {
		return nil
	}
	if after != nil {
		inst.renderCallbacks = append(inst.renderCallbacks, after)
	}
	return inst.renderer.RenderComponent(inst, ForceRender, false)
}

// OnUnmount registers a cleanup function to run when the instance is torn
// down. Cleanups run in reverse registration order. The returned function
// unregisters the cleanup.
func (b *Base) OnUnmount(cleanup func()) func() {
	inst := b.inst
	if cleanup == nil || inst == nil {
		return func() {}
	}
	index := len(inst.disposers)
	inst.disposers = append(inst.disposers, cleanup)
	return func() {
		if index < len(inst.disposers) {
			inst.disposers[index] = nil
		}
	}
}
