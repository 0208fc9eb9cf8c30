package core

import (
	"fmt"
	"maps"

	"github.com/go-drift/vdom/pkg/dom"
)

// Props are the input parameters of a description or instance.
type Props map[string]any

// State is an instance's mutable state.
type State map[string]any

// Context is a mapping inherited from ancestors, optionally extended by
// ChildContextProvider components.
type Context map[string]any

// ChildrenProp carries a component description's children into its props.
const ChildrenProp = "children"

// Kind tags the variant held by a Description.
type Kind uint8

const (
	// KindHost describes a host element identified by Tag.
	KindHost Kind = iota + 1
	// KindComponent describes output delegated to a component Type.
	KindComponent
	// KindText describes a host text node.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindHost:
		return "host"
	case KindComponent:
		return "component"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// Description is the declarative output of one render pass.
type Description struct {
	Kind     Kind
	Tag      string
	Type     *ComponentType
	Props    Props
	Children []*Description
	Text     string
}

// H describes a host element. Children may be descriptions, strings,
// numbers, slices of descriptions or nil (skipped).
func H(tag string, props Props, children ...any) *Description {
	return &Description{Kind: KindHost, Tag: tag, Props: props, Children: flatten(children)}
}

// C describes output delegated to a component.
func C(typ *ComponentType, props Props, children ...any) *Description {
	return &Description{Kind: KindComponent, Type: typ, Props: props, Children: flatten(children)}
}

// Text describes a text node.
func Text(value string) *Description {
	return &Description{Kind: KindText, Text: value}
}

func flatten(children []any) []*Description {
	if len(children) == 0 {
		return nil
	}
	out := make([]*Description, 0, len(children))
	for _, child := range children {
		switch c := child.(type) {
		case nil:
		case *Description:
			if c != nil {
				out = append(out, c)
			}
		case []*Description:
			for _, d := range c {
				if d != nil {
					out = append(out, d)
				}
			}
		case []any:
			out = append(out, flatten(c)...)
		case string:
			out = append(out, Text(c))
		case bool:
			// Booleans render nothing, so conditionals can be inlined.
		default:
			out = append(out, Text(fmt.Sprint(c)))
		}
	}
	return out
}

// Key returns the identity token of the description, if any.
func (d *Description) Key() any {
	if d == nil {
		return nil
	}
	return d.Props[dom.KeyProp]
}

// IsComponent reports whether the description delegates to a component.
func (d *Description) IsComponent() bool {
	return d != nil && d.Kind == KindComponent && d.Type != nil
}

// NodeProps returns the props a component instance receives for this
// description: a copy of Props, the children under ChildrenProp and the
// type's default props for any name left unset.
func (d *Description) NodeProps() Props {
	props := make(Props, len(d.Props)+1)
	maps.Copy(props, d.Props)
	if len(d.Children) > 0 {
		props[ChildrenProp] = d.Children
	}
	if d.Type != nil {
		for name, value := range d.Type.DefaultProps {
			if _, ok := props[name]; !ok {
				props[name] = value
			}
		}
	}
	return props
}
