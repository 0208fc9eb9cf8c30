package dom

import (
	"slices"
	"strings"

	"github.com/go-drift/vdom/pkg/errors"
)

// MutationKind identifies what a Mutation changed.
type MutationKind string

const (
	MutationChildList  MutationKind = "childList"
	MutationAttribute  MutationKind = "attribute"
	MutationProperty   MutationKind = "property"
	MutationStyle      MutationKind = "style"
	MutationText       MutationKind = "text"
	MutationListener   MutationKind = "listener"
	MutationInnerHTML  MutationKind = "innerHTML"
	MutationClassName  MutationKind = "className"
	MutationNodeCreate MutationKind = "create"
)

// Mutation describes a single change made to a MemDocument.
type Mutation struct {
	Kind   MutationKind
	Target Node
	// Name is the attribute, property, style property or event type involved.
	Name string
	// Value is the new value; for child list changes it is "+<node>" or
	// "-<node>".
	Value string
}

// MemDocument is an in-memory host tree.
type MemDocument struct {
	observers []func(Mutation)
}

// NewMemDocument creates an empty document.
func NewMemDocument() *MemDocument {
	return &MemDocument{}
}

// Observe registers fn to receive every mutation made to nodes of this
// document. It returns a function that removes the observer.
func (d *MemDocument) Observe(fn func(Mutation)) func() {
	d.observers = append(d.observers, fn)
	index := len(d.observers) - 1
	return func() {
		if index < len(d.observers) {
			d.observers[index] = nil
		}
	}
}

func (d *MemDocument) record(m Mutation) {
	for _, fn := range d.observers {
		if fn != nil {
			fn(m)
		}
	}
}

// CreateElement creates an HTML element.
func (d *MemDocument) CreateElement(tag string) Element {
	return d.newElement(HTMLNamespace, tag)
}

// CreateElementNS creates an element in the given namespace.
func (d *MemDocument) CreateElementNS(ns, tag string) Element {
	return d.newElement(ns, tag)
}

func (d *MemDocument) newElement(ns, tag string) *MemElement {
	el := &MemElement{tag: tag, ns: ns}
	el.doc = d
	el.self = el
	el.data.NormalizedName = tag
	d.record(Mutation{Kind: MutationNodeCreate, Target: el, Name: tag})
	return el
}

// CreateTextNode creates a text node.
func (d *MemDocument) CreateTextNode(value string) Text {
	t := &MemText{text: value}
	t.doc = d
	t.self = t
	d.record(Mutation{Kind: MutationNodeCreate, Target: t, Name: "#text"})
	return t
}

// DispatchEvent dispatches e at target with capture and bubble phases.
// A panicking listener is reported to the error handler and dispatch
// continues with the next listener.
func (d *MemDocument) DispatchEvent(target Node, e *Event) {
	e.Target = target
	var path []Node
	for n := target.Parent(); n != nil; n = n.Parent() {
		path = append(path, n)
	}

	for i := len(path) - 1; i >= 0; i-- {
		if invokeListeners(path[i], e, PhaseCapturing) {
			return
		}
	}
	if invokeListeners(target, e, PhaseAtTarget) {
		return
	}
	for _, n := range path {
		if invokeListeners(n, e, PhaseBubbling) {
			return
		}
	}
}

// invokeListeners runs the listeners of node that match the phase and
// reports whether propagation was stopped.
func invokeListeners(node Node, e *Event, phase int) bool {
	el, ok := node.(*MemElement)
	if !ok {
		return false
	}
	e.CurrentTarget = node
	e.Phase = phase
	for _, reg := range slices.Clone(el.listeners) {
		if reg.typ != e.Type {
			continue
		}
		if phase == PhaseCapturing && !reg.capture || phase == PhaseBubbling && reg.capture {
			continue
		}
		func() {
			defer errors.Recover("dom.DispatchEvent")
			reg.listener.HandleEvent(e)
		}()
	}
	return e.stopped
}

type memBase interface {
	base() *memNode
}

type memNode struct {
	doc      *MemDocument
	self     Node
	parent   Node
	children []Node
	data     NodeData
}

func (n *memNode) base() *memNode { return n }

func (n *memNode) Parent() Node { return n.parent }

func (n *memNode) FirstChild() Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *memNode) LastChild() Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

func (n *memNode) NextSibling() Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.(memBase).base().children
	i := slices.Index(siblings, n.self)
	if i < 0 || i+1 >= len(siblings) {
		return nil
	}
	return siblings[i+1]
}

func (n *memNode) ChildNodes() []Node {
	return slices.Clone(n.children)
}

func (n *memNode) Data() *NodeData { return &n.data }

func (n *memNode) AppendChild(child Node) {
	n.InsertBefore(child, nil)
}

func (n *memNode) InsertBefore(child, ref Node) {
	if child == nil {
		return
	}
	RemoveNode(child)
	index := len(n.children)
	if ref != nil {
		if i := slices.Index(n.children, ref); i >= 0 {
			index = i
		}
	}
	n.children = slices.Insert(n.children, index, child)
	child.(memBase).base().parent = n.self
	n.doc.record(Mutation{Kind: MutationChildList, Target: n.self, Value: "+" + child.NodeName()})
}

func (n *memNode) ReplaceChild(newChild, oldChild Node) {
	if newChild == nil || newChild == oldChild {
		return
	}
	i := slices.Index(n.children, oldChild)
	if i < 0 {
		return
	}
	RemoveNode(newChild)
	// Removing newChild may have shifted oldChild.
	i = slices.Index(n.children, oldChild)
	n.children[i] = newChild
	oldChild.(memBase).base().parent = nil
	newChild.(memBase).base().parent = n.self
	n.doc.record(Mutation{Kind: MutationChildList, Target: n.self, Value: "-" + oldChild.NodeName()})
	n.doc.record(Mutation{Kind: MutationChildList, Target: n.self, Value: "+" + newChild.NodeName()})
}

func (n *memNode) RemoveChild(child Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.(memBase).base().parent = nil
	n.doc.record(Mutation{Kind: MutationChildList, Target: n.self, Value: "-" + child.NodeName()})
}

// MemText is an in-memory text node.
type MemText struct {
	memNode
	text string
}

func (t *MemText) NodeType() NodeType { return TextNode }
func (t *MemText) NodeName() string   { return "#text" }
func (t *MemText) Text() string       { return t.text }

func (t *MemText) SetText(value string) {
	t.text = value
	t.doc.record(Mutation{Kind: MutationText, Target: t, Value: value})
}

// Attr is an element attribute.
type Attr struct {
	Namespace string
	Name      string
	Value     string
}

type registration struct {
	typ      string
	listener Listener
	capture  bool
}

// MemElement is an in-memory element.
type MemElement struct {
	memNode
	tag       string
	ns        string
	attrs     []Attr
	live      map[string]any
	style     *memStyle
	listeners []registration
}

func (e *MemElement) NodeType() NodeType   { return ElementNode }
func (e *MemElement) NodeName() string     { return e.tag }
func (e *MemElement) NamespaceURI() string { return e.ns }

// Attributes returns a copy of the element's attributes in insertion order.
func (e *MemElement) Attributes() []Attr {
	return slices.Clone(e.attrs)
}

func (e *MemElement) SetClassName(value string) {
	e.setAttr("", "class", value)
	e.doc.record(Mutation{Kind: MutationClassName, Target: e, Value: value})
}

func (e *MemElement) Style() Style {
	if e.style == nil {
		e.style = &memStyle{owner: e}
	}
	return e.style
}

// InlineStyle returns the serialized inline style without allocating a
// style declaration for elements that have none.
func (e *MemElement) InlineStyle() string {
	if e.style == nil {
		v, _ := e.attributeNS("", "style")
		return v
	}
	return e.style.CSSText()
}

func (e *MemElement) SetInnerHTML(markup string) {
	for len(e.children) > 0 {
		e.RemoveChild(e.children[len(e.children)-1])
	}
	for _, child := range parseFragment(e.doc, e, markup) {
		e.AppendChild(child)
	}
	e.doc.record(Mutation{Kind: MutationInnerHTML, Target: e, Value: markup})
}

func (e *MemElement) Attribute(name string) (string, bool) {
	return e.attributeNS("", name)
}

// AttributeNS returns the value of a namespaced attribute.
func (e *MemElement) AttributeNS(ns, name string) (string, bool) {
	return e.attributeNS(ns, name)
}

func (e *MemElement) attributeNS(ns, name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Namespace == ns && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *MemElement) SetAttribute(name, value string) {
	e.setAttr("", strings.ToLower(name), value)
}

func (e *MemElement) RemoveAttribute(name string) {
	e.removeAttr("", strings.ToLower(name))
}

func (e *MemElement) SetAttributeNS(ns, name, value string) {
	e.setAttr(ns, name, value)
}

func (e *MemElement) RemoveAttributeNS(ns, name string) {
	e.removeAttr(ns, name)
}

func (e *MemElement) setAttr(ns, name, value string) {
	e.doc.record(Mutation{Kind: MutationAttribute, Target: e, Name: name, Value: value})
	for i := range e.attrs {
		if e.attrs[i].Namespace == ns && e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Namespace: ns, Name: name, Value: value})
}

func (e *MemElement) removeAttr(ns, name string) {
	i := slices.IndexFunc(e.attrs, func(a Attr) bool {
		return a.Namespace == ns && a.Name == name
	})
	if i < 0 {
		return
	}
	e.attrs = slices.Delete(e.attrs, i, i+1)
	e.doc.record(Mutation{Kind: MutationAttribute, Target: e, Name: name})
}

func (e *MemElement) AddEventListener(typ string, listener Listener, capture bool) {
	for _, reg := range e.listeners {
		if reg.typ == typ && reg.listener == listener && reg.capture == capture {
			return
		}
	}
	e.listeners = append(e.listeners, registration{typ: typ, listener: listener, capture: capture})
	e.doc.record(Mutation{Kind: MutationListener, Target: e, Name: typ, Value: "+"})
}

func (e *MemElement) RemoveEventListener(typ string, listener Listener, capture bool) {
	i := slices.IndexFunc(e.listeners, func(reg registration) bool {
		return reg.typ == typ && reg.listener == listener && reg.capture == capture
	})
	if i < 0 {
		return
	}
	e.listeners = slices.Delete(e.listeners, i, i+1)
	e.doc.record(Mutation{Kind: MutationListener, Target: e, Name: typ, Value: "-"})
}

// ListenerCount returns the number of registered listeners for typ.
func (e *MemElement) ListenerCount(typ string) int {
	count := 0
	for _, reg := range e.listeners {
		if reg.typ == typ {
			count++
		}
	}
	return count
}

// TextContent returns the concatenated text of all descendant text nodes.
func TextContent(n Node) string {
	if t, ok := n.(Text); ok {
		return t.Text()
	}
	var sb strings.Builder
	for _, child := range n.ChildNodes() {
		sb.WriteString(TextContent(child))
	}
	return sb.String()
}
