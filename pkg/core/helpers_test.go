package core

import (
	"fmt"
	"slices"

	"github.com/go-drift/vdom/pkg/dom"
)

// recorder collects lifecycle calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.calls = nil
}

// probe is a component that implements every lifecycle hook.
type probe struct {
	Base
	name    string
	rec     *recorder
	render  func(p *probe, props Props, state State, ctx Context) *Description
	veto    bool
	renders int
}

func (p *probe) Render(props Props, state State, ctx Context) *Description {
	p.renders++
	if p.render == nil {
		return H("div", nil)
	}
	return p.render(p, props, state, ctx)
}

func (p *probe) WillMount() {
	p.rec.add("%s.WillMount", p.name)
}

func (p *probe) DidMount() {
	p.rec.add("%s.DidMount", p.name)
}

func (p *probe) WillUnmount() {
	p.rec.add("%s.WillUnmount", p.name)
}

func (p *probe) WillReceiveProps(Props, Context) {
	p.rec.add("%s.WillReceiveProps", p.name)
}

func (p *probe) ShouldUpdate(Props, State, Context) bool {
	p.rec.add("%s.ShouldUpdate", p.name)
	return !p.veto
}

func (p *probe) WillUpdate(Props, State, Context) {
	p.rec.add("%s.WillUpdate", p.name)
}

func (p *probe) DidUpdate(Props, State, Context) {
	p.rec.add("%s.DidUpdate", p.name)
}

func probeType(name string, rec *recorder, render func(p *probe, props Props, state State, ctx Context) *Description) *ComponentType {
	return NewType(name, func() Component {
		return &probe{name: name, rec: rec, render: render}
	})
}

// delegateTo renders a component description for typ, forwarding props.
func delegateTo(typ *ComponentType) func(*probe, Props, State, Context) *Description {
	return func(_ *probe, props Props, _ State, _ Context) *Description {
		return C(typ, props)
	}
}

func newTestRenderer(opts Options) (*Renderer, *dom.MemDocument, dom.Element) {
	doc := dom.NewMemDocument()
	return NewRenderer(doc, opts), doc, doc.CreateElement("body")
}

func probeOf(inst *Instance) *probe {
	return inst.Component().(*probe)
}

func equalCalls(got, want []string) bool {
	return slices.Equal(got, want)
}
