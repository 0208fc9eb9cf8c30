package core

import (
	"maps"
	"reflect"

	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/dom"
)

// setProps assigns props and context to inst and renders according to mode.
func (r *Renderer) setProps(inst *Instance, props Props, mode RenderMode, ctx Context, mountAll bool) error {
	if inst.disabled {
		return nil
	}
	r.active = inst
	inst.disabled = true

	props = maps.Clone(props)
	if props == nil {
		props = Props{}
	}
	if ref, ok := props[dom.RefProp]; ok {
		delete(props, dom.RefProp)
		if fn := dom.RefOf(ref); fn != nil {
			inst.ref = fn
		}
	}
	if key, ok := props[dom.KeyProp]; ok {
		delete(props, dom.KeyProp)
		if dom.Truthy(key) {
			inst.key = key
		}
	}

	if inst.base == nil || mountAll {
		if h, ok := inst.component.(WillMounter); ok {
			h.WillMount()
		}
	} else if h, ok := inst.component.(PropsReceiver); ok {
		h.WillReceiveProps(props, ctx)
	}

	if ctx != nil && !sameContext(ctx, inst.context) {
		inst.stageContext()
		inst.context = ctx
	}

	inst.stageProps()
	inst.props = props

	inst.disabled = false

	if mode != NoRender {
		if mode == SyncRender || r.opts.SyncComponentUpdates || inst.base == nil {
			if err := r.renderComponent(inst, SyncRender, mountAll, false); err != nil {
				return err
			}
		} else {
			r.enqueue(inst)
		}
	}

	if inst.ref != nil {
		inst.ref(inst)
	}
	return nil
}

// renderComponent renders inst, resolving delegation to other components
// and splicing the produced host node into the tree.
func (r *Renderer) renderComponent(inst *Instance, mode RenderMode, mountAll, isChild bool) error {
	if inst.disabled {
		return nil
	}
	r.active = inst

	props, state, ctx := inst.props, inst.state, inst.context
	prevProps, prevState, prevCtx := inst.previous()
	isUpdate := inst.base != nil
	nextBase := inst.nextBase
	initialBase := inst.base
	if initialBase == nil {
		initialBase = nextBase
	}
	initialChild := r.lookup(inst.delegate)
	skip := false

	if isUpdate {
		inst.props, inst.state, inst.context = prevProps, prevState, prevCtx
		decider, canDecide := inst.component.(UpdateDecider)
		if mode != ForceRender && canDecide && !decider.ShouldUpdate(props, state, ctx) {
			skip = true
		} else if h, ok := inst.component.(WillUpdater); ok {
			h.WillUpdate(props, state, ctx)
		}
		inst.props, inst.state, inst.context = props, state, ctx
	}

	inst.prev.clear()
	inst.nextBase = nil
	inst.dirty = false

	if !skip {
		rendered := inst.component.Render(props, state, ctx)

		if p, ok := inst.component.(ChildContextProvider); ok {
			merged := make(Context, len(ctx))
			maps.Copy(merged, ctx)
			maps.Copy(merged, p.ChildContext())
			ctx = merged
		}

		var (
			toUnmount *Instance
			child     *Instance
			base      dom.Node
		)

		if rendered.IsComponent() {
			var err error
			child, toUnmount, err = r.resolveDelegate(inst, initialChild, rendered, ctx, nextBase, mountAll)
			if err != nil {
				return err
			}
			base = child.base
		} else {
			cbase := initialBase
			toUnmount = initialChild
			if toUnmount != nil {
				cbase = nil
				inst.delegate = 0
			}
			if initialBase != nil || mode == SyncRender {
				if cbase != nil {
					r.unstamp(cbase)
				}
				var parent dom.Node
				if initialBase != nil {
					parent = initialBase.Parent()
				}
				var err error
				base, err = r.diff(cbase, rendered, ctx, mountAll || !isUpdate, parent)
				if err != nil {
					return err
				}
			}
		}

		if initialBase != nil && base != initialBase && child != initialChild {
			if parent := initialBase.Parent(); parent != nil && base != parent {
				parent.ReplaceChild(base, initialBase)
				if toUnmount == nil {
					r.unstamp(initialBase)
					r.differ.Recollect(initialBase, false)
				}
			}
		}

		if toUnmount != nil {
			r.unmount(toUnmount)
		}

		inst.base = base
		if base != nil && !isChild {
			outer := inst
			for owner := r.lookup(inst.owner); owner != nil; owner = r.lookup(owner.owner) {
				owner.base = base
				outer = owner
			}
			r.stamp(base, outer)
		}
	}

	if !isUpdate || mountAll {
		r.mounts = append(r.mounts, inst)
	} else if !skip {
		if h, ok := inst.component.(DidUpdater); ok {
			h.DidUpdate(prevProps, prevState, prevCtx)
		}
		if r.opts.AfterUpdate != nil {
			r.opts.AfterUpdate(inst)
		}
	}

	inst.drainRenderCallbacks()

	if r.diffLevel == 0 && !isChild {
		r.flushMounts()
	}
	return nil
}

// flushMounts runs pending DidMount hooks in registration order, which
// places every delegate and nested component before the instance that
// rendered it.
func (r *Renderer) flushMounts() {
	if len(r.mounts) > 0 {
		r.log.Debug("flushing mounts", zap.Int("count", len(r.mounts)))
	}
	for len(r.mounts) > 0 {
		inst := r.mounts[0]
		r.mounts = r.mounts[1:]
		r.active = inst
		if r.opts.AfterMount != nil {
			r.opts.AfterMount(inst)
		}
		if h, ok := inst.component.(DidMounter); ok {
			h.DidMount()
		}
	}
}

// sameContext compares contexts by identity, not content.
func sameContext(a, b Context) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
