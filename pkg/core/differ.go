package core

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-drift/vdom/pkg/dom"
)

// treeDiffer is the default HostDiffer. Children are matched by position;
// keys are not interpreted.
type treeDiffer struct {
	r *Renderer
}

func newTreeDiffer(r *Renderer) *treeDiffer {
	return &treeDiffer{r: r}
}

func (d *treeDiffer) Diff(prev dom.Node, desc *Description, ctx Context, mountAll bool, parent dom.Node) (dom.Node, error) {
	svg := false
	if el, ok := parent.(dom.Element); ok {
		svg = el.NamespaceURI() == dom.SVGNamespace && el.NodeName() != "foreignObject"
	}
	out, err := d.idiff(prev, desc, ctx, mountAll, svg, true)
	if err != nil {
		return nil, err
	}
	if parent != nil && out.Parent() != parent {
		parent.AppendChild(out)
	}
	return out, nil
}

func (d *treeDiffer) idiff(node dom.Node, desc *Description, ctx Context, mountAll, svg, componentRoot bool) (dom.Node, error) {
	if desc == nil || desc.Kind == 0 {
		desc = Text("")
	}

	switch desc.Kind {
	case KindComponent:
		if desc.Type == nil {
			return d.idiff(node, Text(""), ctx, mountAll, svg, componentRoot)
		}
		return d.r.buildComponent(node, desc, ctx, mountAll)
	case KindText:
		return d.diffText(node, desc, componentRoot), nil
	}

	tag := desc.Tag
	switch tag {
	case "svg":
		svg = true
	case "foreignObject":
		svg = false
	}

	out := node
	if node == nil || !isNamed(node, tag) {
		out = d.createNode(tag, svg)
		if node != nil {
			for child := node.FirstChild(); child != nil; child = node.FirstChild() {
				out.AppendChild(child)
			}
			if parent := node.Parent(); parent != nil {
				parent.ReplaceChild(out, node)
			}
			d.Recollect(node, true)
		}
	}

	el := out.(dom.Element)
	old := el.Data().Props
	if old == nil {
		old = attributeProps(el)
	}

	if _, raw := desc.Props[dom.InnerHTMLProp]; !raw && (len(desc.Children) > 0 || el.FirstChild() != nil) {
		if err := d.diffChildren(el, desc.Children, ctx, mountAll, svg); err != nil {
			return nil, err
		}
	}

	applied := d.diffAttributes(el, desc.Props, old, svg)
	el.Data().Props = applied
	return out, nil
}

func (d *treeDiffer) diffText(node dom.Node, desc *Description, componentRoot bool) dom.Node {
	if text, ok := node.(dom.Text); ok && text.Parent() != nil && (!d.stamped(node) || componentRoot) {
		if text.Text() != desc.Text {
			text.SetText(desc.Text)
		}
		return text
	}
	out := d.r.doc.CreateTextNode(desc.Text)
	if node != nil {
		if parent := node.Parent(); parent != nil {
			parent.ReplaceChild(out, node)
		}
		d.Recollect(node, true)
	}
	out.Data().Props = map[string]any{}
	return out
}

// diffChildren reconciles el's children with children by position.
func (d *treeDiffer) diffChildren(el dom.Element, children []*Description, ctx Context, mountAll, svg bool) error {
	for i, vchild := range children {
		live := el.ChildNodes()
		var current dom.Node
		if i < len(live) {
			current = live[i]
		}
		if current != nil && d.stamped(current) && !vchild.IsComponent() {
			d.Recollect(current, false)
			current = nil
		}

		out, err := d.idiff(current, vchild, ctx, mountAll, svg, false)
		if err != nil {
			return err
		}

		live = el.ChildNodes()
		if i < len(live) && live[i] == out {
			continue
		}
		var ref dom.Node
		if i < len(live) {
			ref = live[i]
		}
		el.InsertBefore(out, ref)
	}

	live := el.ChildNodes()
	for j := len(live) - 1; j >= len(children); j-- {
		d.Recollect(live[j], false)
	}
	return nil
}

// diffAttributes applies props to el given the previously applied old
// props and returns the props now applied.
func (d *treeDiffer) diffAttributes(el dom.Element, props, old map[string]any, svg bool) map[string]any {
	acc := d.r.accessor
	applied := maps.Clone(old)
	if applied == nil {
		applied = make(map[string]any, len(props))
	}

	var oldNames []string
	for name := range old {
		oldNames = append(oldNames, name)
	}
	slices.Sort(oldNames)
	for _, name := range oldNames {
		if props[name] == nil && old[name] != nil {
			acc.Set(el, name, old[name], nil, svg)
			delete(applied, name)
		}
	}
	var names []string
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if name == ChildrenProp || name == "innerHTML" {
			continue
		}
		value := props[name]
		prev, had := old[name]
		current := prev
		if name == "value" || name == "checked" {
			current = el.Property(name)
		}
		if had && sameValue(value, current) {
			continue
		}
		acc.Set(el, name, prev, value, svg)
		applied[name] = value
	}
	return applied
}

func (d *treeDiffer) createNode(tag string, svg bool) dom.Node {
	var el dom.Element
	if svg {
		el = d.r.doc.CreateElementNS(dom.SVGNamespace, tag)
	} else {
		el = d.r.doc.CreateElement(tag)
	}
	el.Data().NormalizedName = tag
	return el
}

func (d *treeDiffer) stamped(node dom.Node) bool {
	_, ok := d.r.stamps[node]
	return ok
}

// Recollect disposes of node. A node owned by a component tears that
// component down instead.
func (d *treeDiffer) Recollect(node dom.Node, unmountOnly bool) {
	if owner := d.r.OwnerOf(node); owner != nil {
		d.r.unmount(owner)
		return
	}
	d.r.unstamp(node)
	data := node.Data()
	if ref := dom.RefOf(data.Props[dom.RefProp]); ref != nil {
		ref(nil)
	}
	if !unmountOnly || data.Props == nil {
		dom.RemoveNode(node)
	}
	d.RemoveChildren(node)
}

// RemoveChildren recollects node's descendants, last child first. Nodes the
// differ produced stay attached so a recycled subtree can be reused.
func (d *treeDiffer) RemoveChildren(node dom.Node) {
	children := node.ChildNodes()
	for i := len(children) - 1; i >= 0; i-- {
		d.Recollect(children[i], true)
	}
}

func isNamed(node dom.Node, tag string) bool {
	if node.NodeType() != dom.ElementNode {
		return false
	}
	return node.Data().NormalizedName == tag || strings.EqualFold(node.NodeName(), tag)
}

// attributeProps seeds the applied props of a node the differ did not
// create, such as markup parsed from raw HTML.
func attributeProps(el dom.Element) map[string]any {
	lister, ok := el.(interface{ Attributes() []dom.Attr })
	if !ok {
		return map[string]any{}
	}
	props := make(map[string]any)
	for _, a := range lister.Attributes() {
		if a.Namespace == "" {
			props[a.Name] = a.Value
		}
	}
	return props
}

// sameValue reports whether a prop value is unchanged. Functions never
// compare equal, so handlers are always re-applied; maps compare by identity.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Pointer:
		return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
	case reflect.Slice:
		return false
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}
