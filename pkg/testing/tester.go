package testing

import (
	"testing"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/dom"
)

// RootTag is the tag of the container element descriptions render into.
const RootTag = "body"

// Tester mounts descriptions into an in-memory document and records the
// mutations each render performs.
type Tester struct {
	doc       *dom.MemDocument
	root      dom.Element
	renderer  *core.Renderer
	node      dom.Node
	mutations []dom.Mutation
	stop      func()
}

// NewTester creates a tester with synchronous prop updates.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	return NewTesterWithOptions(core.DefaultOptions())
}

// NewTesterWithOptions creates a tester whose renderer uses opts.
func NewTesterWithOptions(opts core.Options, options ...core.Option) *Tester {
	doc := dom.NewMemDocument()
	t := &Tester{
		doc:  doc,
		root: doc.CreateElement(RootTag),
	}
	t.renderer = core.NewRenderer(doc, opts, options...)
	t.stop = doc.Observe(func(m dom.Mutation) {
		t.mutations = append(t.mutations, m)
	})
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup tears down the rendered tree and stops recording mutations.
func (t *Tester) Cleanup() {
	t.Unmount()
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// Render reconciles the current output with desc, mounting it on the first
// call, and flushes deferred renders.
func (t *Tester) Render(desc *core.Description) error {
	node, err := t.renderer.Render(desc, t.root, t.node)
	if err != nil {
		return err
	}
	t.node = node
	return t.Pump()
}

// Pump renders every instance whose render was deferred.
func (t *Tester) Pump() error {
	return t.renderer.Flush()
}

// Unmount tears down the rendered tree.
func (t *Tester) Unmount() {
	if t.node == nil {
		return
	}
	if owner := t.renderer.OwnerOf(t.node); owner != nil {
		_ = t.renderer.Unmount(owner)
	} else {
		dom.RemoveNode(t.node)
	}
	t.node = nil
}

// Renderer returns the renderer under test.
func (t *Tester) Renderer() *core.Renderer {
	return t.renderer
}

// Document returns the in-memory document.
func (t *Tester) Document() *dom.MemDocument {
	return t.doc
}

// Root returns the container element.
func (t *Tester) Root() dom.Element {
	return t.root
}

// Node returns the host node of the rendered tree.
func (t *Tester) Node() dom.Node {
	return t.node
}

// Owner returns the outermost instance rendering the tree, if any.
func (t *Tester) Owner() *core.Instance {
	if t.node == nil {
		return nil
	}
	return t.renderer.OwnerOf(t.node)
}

// HTML returns the serialization of the rendered tree.
func (t *Tester) HTML() string {
	return dom.InnerHTML(t.root)
}

// Mutations returns the mutations recorded since the last call and
// resets the record.
func (t *Tester) Mutations() []dom.Mutation {
	m := t.mutations
	t.mutations = nil
	return m
}

// Find evaluates a finder against the rendered tree.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.node == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		nodes:  finder.Evaluate(t.root),
		finder: finder,
	}
}
