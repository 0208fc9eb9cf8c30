package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes the HTML serialization of node and its subtree to w.
func Render(w io.Writer, node Node) error {
	return html.Render(w, toHTML(node))
}

// OuterHTML returns the HTML serialization of node.
func OuterHTML(node Node) string {
	var buf bytes.Buffer
	if err := Render(&buf, node); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML returns the HTML serialization of node's children.
func InnerHTML(node Node) string {
	var buf bytes.Buffer
	for _, child := range node.ChildNodes() {
		if err := Render(&buf, child); err != nil {
			return ""
		}
	}
	return buf.String()
}

func toHTML(node Node) *html.Node {
	switch n := node.(type) {
	case Text:
		return &html.Node{Type: html.TextNode, Data: n.Text()}
	case Element:
		out := &html.Node{
			Type:     html.ElementNode,
			Data:     n.NodeName(),
			DataAtom: atom.Lookup([]byte(n.NodeName())),
		}
		if n.NamespaceURI() == SVGNamespace {
			out.Namespace = "svg"
		}
		out.Attr = htmlAttrs(n)
		for _, child := range n.ChildNodes() {
			out.AppendChild(toHTML(child))
		}
		return out
	default:
		return &html.Node{Type: html.CommentNode, Data: node.NodeName()}
	}
}

func htmlAttrs(el Element) []html.Attribute {
	var attrs []html.Attribute
	if mem, ok := el.(*MemElement); ok {
		for _, a := range mem.attrs {
			if a.Namespace == "" && a.Name == "style" && mem.style != nil {
				continue
			}
			attr := html.Attribute{Key: a.Name, Val: a.Value}
			if a.Namespace == XLinkNamespace {
				attr.Namespace = "xlink"
			}
			attrs = append(attrs, attr)
		}
		if mem.style != nil {
			if css := mem.style.CSSText(); css != "" {
				attrs = append(attrs, html.Attribute{Key: "style", Val: css})
			}
		}
		return attrs
	}
	if css := el.Style().CSSText(); css != "" {
		attrs = append(attrs, html.Attribute{Key: "style", Val: css})
	}
	return attrs
}

// parseFragment parses markup in the context of parent and converts the
// result into nodes owned by doc.
func parseFragment(doc *MemDocument, parent *MemElement, markup string) []Node {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     parent.tag,
		DataAtom: atom.Lookup([]byte(parent.tag)),
	}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return []Node{doc.CreateTextNode(markup)}
	}
	nodes := make([]Node, 0, len(parsed))
	for _, p := range parsed {
		if n := fromHTML(doc, p); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func fromHTML(doc *MemDocument, p *html.Node) Node {
	switch p.Type {
	case html.TextNode:
		return doc.CreateTextNode(p.Data)
	case html.ElementNode:
		ns := HTMLNamespace
		if p.Namespace == "svg" {
			ns = SVGNamespace
		}
		el := doc.newElement(ns, p.Data)
		for _, a := range p.Attr {
			if a.Namespace == "xlink" {
				el.setAttr(XLinkNamespace, a.Key, a.Val)
				continue
			}
			el.setAttr("", a.Key, a.Val)
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(doc, c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		return nil
	}
}
