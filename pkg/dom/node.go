package dom

// Namespace URIs used by element creation and namespaced attributes.
const (
	HTMLNamespace  = "http://www.w3.org/1999/xhtml"
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// NodeType distinguishes the kinds of host nodes.
type NodeType int

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// Node is a node in the host tree.
//
// Implementations must return an untyped nil from the navigation methods when
// there is no such node.
type Node interface {
	NodeType() NodeType
	// NodeName returns the lower-case tag name for elements and "#text" for
	// text nodes.
	NodeName() string
	Parent() Node
	FirstChild() Node
	LastChild() Node
	NextSibling() Node
	ChildNodes() []Node

	AppendChild(child Node)
	// InsertBefore inserts child before ref. A nil ref appends.
	InsertBefore(child, ref Node)
	ReplaceChild(newChild, oldChild Node)
	RemoveChild(child Node)

	// Data returns the per-node bookkeeping slot. It is never nil.
	Data() *NodeData
}

// Element is a host element node.
type Element interface {
	Node

	NamespaceURI() string
	SetClassName(value string)
	Style() Style
	// SetInnerHTML replaces the element's children with the parsed markup.
	SetInnerHTML(markup string)

	// HasProperty reports whether name is a settable property of the element.
	HasProperty(name string) bool
	Property(name string) any
	// SetProperty assigns a host property. Hosts may reject some
	// name/value combinations.
	SetProperty(name string, value any) error

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	SetAttributeNS(ns, name, value string)
	RemoveAttributeNS(ns, name string)

	AddEventListener(typ string, listener Listener, capture bool)
	RemoveEventListener(typ string, listener Listener, capture bool)
}

// Text is a host text node.
type Text interface {
	Node
	Text() string
	SetText(value string)
}

// Style is an element's inline style declaration.
type Style interface {
	CSSText() string
	SetCSSText(value string)
	Get(name string) string
	// Set assigns a single property; an empty value removes it.
	Set(name, value string)
}

// Document creates host nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateElementNS(ns, tag string) Element
	CreateTextNode(value string) Text
}

// NodeData holds the bookkeeping the renderer attaches to host nodes.
type NodeData struct {
	// Listeners maps a lower-case event type to the current handler. The
	// accessor's proxy listener reads it at dispatch time.
	Listeners map[string]EventHandler
	// Props is the last description props applied to the node by the tree
	// differ. A nil map means the node was not produced by the differ.
	Props map[string]any
	// NormalizedName is the tag the node was created for.
	NormalizedName string
}

// RemoveNode detaches node from its parent, if it has one.
func RemoveNode(node Node) {
	if node == nil {
		return
	}
	if parent := node.Parent(); parent != nil {
		parent.RemoveChild(node)
	}
}
