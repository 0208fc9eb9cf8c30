package core

import (
	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/dom"
)

// unmount tears inst down. The delegate chain is torn down recursively and
// the host node is reclaimed once, by the instance at the bottom of the
// chain.
func (r *Renderer) unmount(inst *Instance) {
	r.active = inst
	if r.opts.BeforeUnmount != nil {
		r.opts.BeforeUnmount(inst)
	}

	base := inst.base
	inst.disabled = true

	if h, ok := inst.component.(WillUnmounter); ok {
		h.WillUnmount()
	}

	inst.base = nil

	if inner := r.lookup(inst.delegate); inner != nil {
		r.unmount(inner)
	} else if base != nil {
		if ref := dom.RefOf(base.Data().Props[dom.RefProp]); ref != nil {
			ref(nil)
		}
		inst.nextBase = base
		r.unstamp(base)
		dom.RemoveNode(base)
		r.pool.Release(inst)
		r.differ.RemoveChildren(base)
		r.log.Debug("host node reclaimed", zap.String("component", inst.name()))
	}

	inst.runDisposers()
	if inst.ref != nil {
		inst.ref(nil)
	}
	r.untrack(inst)
}
