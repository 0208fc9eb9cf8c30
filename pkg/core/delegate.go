package core

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/dom"
)

// resolveDelegate produces the delegate for inst when its render returned a
// component description. The current delegate is reused in place when it
// has the same type and key; otherwise a fresh instance replaces it and the
// old one is returned for teardown.
func (r *Renderer) resolveDelegate(inst, current *Instance, rendered *Description, ctx Context, nextBase dom.Node, mountAll bool) (child, toUnmount *Instance, err error) {
	childProps := rendered.NodeProps()

	if current != nil && current.typ == rendered.Type && reflect.DeepEqual(storedKey(childProps[dom.KeyProp]), current.key) {
		return current, nil, r.setProps(current, childProps, SyncRender, ctx, false)
	}

	toUnmount = current
	child = r.acquire(rendered.Type, childProps, ctx)
	inst.delegate = child.id
	if child.nextBase == nil {
		child.nextBase = nextBase
	}
	child.owner = inst.id
	r.log.Debug("delegate created",
		zap.String("owner", inst.name()),
		zap.String("delegate", child.name()),
		zap.Bool("replaces", current != nil),
	)
	if err := r.setProps(child, childProps, NoRender, ctx, false); err != nil {
		return child, toUnmount, err
	}
	if err := r.renderComponent(child, SyncRender, mountAll, true); err != nil {
		return child, toUnmount, err
	}
	return child, toUnmount, nil
}

// buildComponent reconciles node, found at a position where desc names a
// component, and returns the host node the component renders to.
func (r *Renderer) buildComponent(node dom.Node, desc *Description, ctx Context, mountAll bool) (dom.Node, error) {
	var (
		c             *Instance
		isDirectOwner bool
	)
	if node != nil {
		if s, ok := r.stamps[node]; ok {
			c = r.lookup(s.id)
			isDirectOwner = c != nil && s.typ == desc.Type
		}
	}
	original := c
	oldNode := node
	isOwner := isDirectOwner
	props := desc.NodeProps()

	for c != nil && !isOwner {
		if c = r.lookup(c.owner); c != nil {
			isOwner = c.typ == desc.Type
		}
	}

	if c != nil && isOwner && (!mountAll || r.lookup(c.delegate) != nil) {
		if err := r.setProps(c, props, AsyncRender, ctx, mountAll); err != nil {
			return nil, err
		}
		return c.base, nil
	}

	if original != nil && !isDirectOwner {
		r.unmount(original)
		node, oldNode = nil, nil
	}

	c = r.acquire(desc.Type, props, ctx)
	if node != nil && c.nextBase == nil {
		c.nextBase = node
		// The node is now the new instance's mount hint; its differ pass
		// recycles it if unused.
		oldNode = nil
	}
	if err := r.setProps(c, props, SyncRender, ctx, mountAll); err != nil {
		return nil, err
	}
	node = c.base

	if oldNode != nil && node != oldNode {
		r.unstamp(oldNode)
		r.differ.Recollect(oldNode, false)
	}
	return node, nil
}

// storedKey returns the key an instance keeps for v. Falsy keys are never
// stored, so they match an instance without a key.
func storedKey(v any) any {
	if !dom.Truthy(v) {
		return nil
	}
	return v
}
