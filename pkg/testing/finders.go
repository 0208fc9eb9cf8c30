package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/vdom/pkg/dom"
)

// Finder locates nodes in the host tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order,
	// root excluded).
	Evaluate(root dom.Node) []dom.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []dom.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() dom.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() dom.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) dom.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []dom.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Text returns the text content of the first match. Panics if no matches.
func (r FinderResult) Text() string {
	return dom.TextContent(r.First())
}

// Attribute returns an attribute of the first match, which must be an
// element.
func (r FinderResult) Attribute(name string) (string, bool) {
	el, ok := r.First().(dom.Element)
	if !ok {
		return "", false
	}
	return el.Attribute(name)
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type predicateFinder struct {
	fn   func(dom.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root dom.Node) []dom.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByTag finds elements with the given tag name.
func ByTag(tag string) Finder {
	return &predicateFinder{
		fn: func(n dom.Node) bool {
			return n.NodeType() == dom.ElementNode && strings.EqualFold(n.NodeName(), tag)
		},
		desc: fmt.Sprintf("ByTag(%s)", tag),
	}
}

// ByText finds elements whose text content equals text exactly.
func ByText(text string) Finder {
	return &predicateFinder{
		fn: func(n dom.Node) bool {
			return n.NodeType() == dom.ElementNode && dom.TextContent(n) == text
		},
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining finds text nodes containing substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(n dom.Node) bool {
			t, ok := n.(dom.Text)
			return ok && strings.Contains(t.Text(), substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByAttribute finds elements whose attribute name equals value.
func ByAttribute(name, value string) Finder {
	return &predicateFinder{
		fn: func(n dom.Node) bool {
			el, ok := n.(dom.Element)
			if !ok {
				return false
			}
			v, ok := el.Attribute(name)
			return ok && v == value
		},
		desc: fmt.Sprintf("ByAttribute(%s=%q)", name, value),
	}
}

// ByClass finds elements whose class list contains class.
func ByClass(class string) Finder {
	return &predicateFinder{
		fn: func(n dom.Node) bool {
			el, ok := n.(dom.Element)
			if !ok {
				return false
			}
			v, _ := el.Attribute("class")
			for _, c := range strings.Fields(v) {
				if c == class {
					return true
				}
			}
			return false
		},
		desc: fmt.Sprintf("ByClass(%s)", class),
	}
}

// ByPredicate finds nodes matching a custom predicate.
func ByPredicate(fn func(dom.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root dom.Node) []dom.Node {
	var out []dom.Node
	seen := make(map[dom.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, n := range f.matching.Evaluate(ancestor) {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant finds nodes matching matching that are descendants of nodes
// matching of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches walks the tree under root and collects nodes matching the
// predicate.
func collectMatches(root dom.Node, predicate func(dom.Node) bool) []dom.Node {
	var out []dom.Node
	var walk func(dom.Node)
	walk = func(n dom.Node) {
		for _, child := range n.ChildNodes() {
			if predicate(child) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}
