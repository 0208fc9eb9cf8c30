package loader

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/dom"
)

// Registry maps component names used in documents to component types.
//
// A Registry also remembers the types it built for document templates, so
// rebuilding a document whose template is unchanged yields the same type
// and the renderer can update existing instances in place.
type Registry struct {
	types     map[string]*core.ComponentType
	templates map[string]*templateBinding
}

// templateBinding is the render state behind a template component type.
// Build rebinds scope on every call that reuses the type.
type templateBinding struct {
	tmpl  *Template
	scope *Registry
	typ   *core.ComponentType
}

// NewRegistry returns a registry holding types, keyed by their names.
func NewRegistry(types ...*core.ComponentType) *Registry {
	r := &Registry{types: make(map[string]*core.ComponentType)}
	for _, typ := range types {
		r.Register(typ)
	}
	return r
}

// Register adds typ under typ.Name, replacing any previous entry.
func (r *Registry) Register(typ *core.ComponentType) {
	r.types[typ.Name] = typ
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*core.ComponentType, bool) {
	typ, ok := r.types[name]
	return typ, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	var names []string
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build converts the document into a description. Template components
// defined by the document are registered in a copy of reg, so they may
// shadow registered types without changing reg's lookups. reg keeps the
// template types it built: an unchanged template keeps its type across
// builds. A nil reg is treated as empty.
func (d *Document) Build(reg *Registry) (*core.Description, error) {
	scope := NewRegistry()
	if reg != nil {
		maps.Copy(scope.types, reg.types)
	}
	var names []string
	for name := range d.Components {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		scope.Register(reg.templateType(name, d.Components[name], scope))
	}
	for _, name := range names {
		if err := checkRefs(d.Components[name].Render, scope); err != nil {
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
	}

	descs, err := build(d.Root, scope, nil)
	if err != nil {
		return nil, err
	}
	return descs[0], nil
}

// templateType returns the component type that renders tmpl, reusing the
// type built for an equal template under the same name. Component
// references inside the template resolve against scope at render time.
func (r *Registry) templateType(name string, tmpl *Template, scope *Registry) *core.ComponentType {
	if r != nil {
		if b, ok := r.templates[name]; ok && reflect.DeepEqual(b.tmpl, tmpl) {
			b.tmpl, b.scope = tmpl, scope
			return b.typ
		}
	}

	b := &templateBinding{tmpl: tmpl, scope: scope}
	b.typ = core.Func(name, b.render).WithDefaults(core.Props(tmpl.Defaults))
	if r != nil {
		if r.templates == nil {
			r.templates = make(map[string]*templateBinding)
		}
		r.templates[name] = b
	}
	return b.typ
}

func (b *templateBinding) render(props core.Props, _ core.Context) *core.Description {
	descs, err := build(b.tmpl.Render, b.scope, props)
	if err != nil {
		// Build checked every reference, so this is unreachable for a
		// document built through it.
		panic(err)
	}
	if len(descs) != 1 {
		return core.H("div", nil, descs)
	}
	return descs[0]
}

// build converts n into descriptions. props is nil outside templates. A
// slot expands to any number of descriptions.
func build(n *Node, reg *Registry, props core.Props) ([]*core.Description, error) {
	switch {
	case n.Slot:
		children, _ := props[core.ChildrenProp].([]*core.Description)
		return children, nil
	case n.Text != nil:
		return []*core.Description{core.Text(interpolateText(*n.Text, props))}, nil
	}

	nodeProps := make(core.Props, len(n.Props)+1)
	for name, value := range n.Props {
		nodeProps[name] = interpolate(value, props)
	}
	if n.Key != nil {
		nodeProps[dom.KeyProp] = interpolate(n.Key, props)
	}

	var children []any
	for _, child := range n.Children {
		descs, err := build(child, reg, props)
		if err != nil {
			return nil, err
		}
		children = append(children, descs)
	}

	if n.Component != "" {
		typ, ok := reg.Lookup(n.Component)
		if !ok {
			return nil, invalid("unknown component %q", n.Component)
		}
		return []*core.Description{core.C(typ, nodeProps, children...)}, nil
	}
	return []*core.Description{core.H(n.Tag, nodeProps, children...)}, nil
}

func checkRefs(n *Node, reg *Registry) error {
	if n.Component != "" {
		if _, ok := reg.Lookup(n.Component); !ok {
			return invalid("unknown component %q", n.Component)
		}
	}
	for _, child := range n.Children {
		if err := checkRefs(child, reg); err != nil {
			return err
		}
	}
	return nil
}

func interpolate(value any, props core.Props) any {
	s, ok := value.(string)
	if !ok || props == nil || !strings.HasPrefix(s, "$") {
		return value
	}
	return props[s[1:]]
}

func interpolateText(s string, props core.Props) string {
	if props == nil || !strings.HasPrefix(s, "$") {
		return s
	}
	v, ok := props[s[1:]]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
