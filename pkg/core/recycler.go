package core

import "github.com/go-drift/vdom/pkg/dom"

// Recycler is the default Pool. Released instances are kept per type so
// that the next instance of the same type can reuse the released one's last
// host node as a mount hint. Instances themselves are never reused.
type Recycler struct {
	released map[*ComponentType][]*Instance
	// Limit caps the number of released instances kept per type. Zero
	// means unlimited.
	Limit int
}

// NewRecycler creates an empty Recycler.
func NewRecycler() *Recycler {
	return &Recycler{released: make(map[*ComponentType][]*Instance)}
}

// Acquire creates an instance of typ, handing it the host node of a
// released instance of the same type if one is available.
func (p *Recycler) Acquire(typ *ComponentType, props Props, ctx Context) *Instance {
	inst := NewInstance(typ, props, ctx)
	list := p.released[typ]
	if len(list) > 0 {
		last := len(list) - 1
		inst.nextBase = list[last].nextBase
		list[last] = nil
		p.released[typ] = list[:last]
	}
	return inst
}

// Release keeps inst so its host node can be reused.
func (p *Recycler) Release(inst *Instance) {
	list := p.released[inst.typ]
	if p.Limit > 0 && len(list) >= p.Limit {
		return
	}
	p.released[inst.typ] = append(list, inst)
}

// Hint returns the host node the next Acquire of typ would receive.
func (p *Recycler) Hint(typ *ComponentType) dom.Node {
	list := p.released[typ]
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1].nextBase
}
