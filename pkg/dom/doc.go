// Package dom describes the host tree the renderer mutates and provides the
// attribute reconciler that applies a single name/value change to a node.
//
// The host tree is expressed as a small set of interfaces (Node, Element,
// Text, Style, Document) so the renderer can drive any tree that can satisfy
// them, e.g. a browser document reached through syscall/js. MemDocument is an
// in-memory implementation used by tests, the CLI and server-side rendering.
//
// # Attribute reconciliation
//
// Accessor.Set classifies a name/value pair and picks a mutation strategy:
//
//	acc := dom.NewAccessor(nil)
//	acc.Set(el, "class", nil, "card", false)
//	acc.Set(el, "style", nil, map[string]any{"width": 10, "opacity": 0.5}, false)
//	acc.Set(el, "onClick", nil, dom.EventHandler(func(e *dom.Event) {}), false)
//
// Event handlers are never registered directly. Each Accessor owns one stable
// proxy listener; handlers live in the node's NodeData and are looked up by
// event type at dispatch time, so replacing a handler never touches the
// host's listener registrations.
//
// # Rendering to HTML
//
// Render serializes a MemDocument subtree using golang.org/x/net/html:
//
//	var buf bytes.Buffer
//	_ = dom.Render(&buf, root)
package dom
