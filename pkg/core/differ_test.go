package core

import (
	"testing"

	"github.com/go-drift/vdom/pkg/dom"
)

func TestDiff_HostTree(t *testing.T) {
	r, _, root := newTestRenderer(DefaultOptions())

	ul, err := r.Render(H("ul", Props{"id": "list"}, H("li", nil, "a"), H("li", nil, "b")), root, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got, want := dom.OuterHTML(root), `<body><ul id="list"><li>a</li><li>b</li></ul></body>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	text := ul.FirstChild().FirstChild()
	if _, err := r.Render(H("ul", nil, H("li", nil, "z")), root, ul); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got, want := dom.OuterHTML(root), `<body><ul><li>z</li></ul></body>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if ul.FirstChild().FirstChild() != text {
		t.Error("expected text node to be updated in place")
	}
}

func TestDiff_TagChangeMovesChildren(t *testing.T) {
	r, _, root := newTestRenderer(DefaultOptions())

	ul, err := r.Render(H("ul", nil, H("li", nil, "a")), root, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	li := ul.FirstChild()

	ol, err := r.Render(H("ol", nil, H("li", nil, "a")), root, ul)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if ol == ul {
		t.Fatal("expected a new node for a different tag")
	}
	if got, want := dom.OuterHTML(root), `<body><ol><li>a</li></ol></body>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if ol.FirstChild() != li {
		t.Error("expected children to move to the replacement node")
	}
}

func TestDiff_RemovedAttribute(t *testing.T) {
	r, _, root := newTestRenderer(DefaultOptions())

	node, err := r.Render(H("div", Props{"id": "x", "data-role": "main"}), root, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := r.Render(H("div", Props{"id": "x"}), root, node); err != nil {
		t.Fatalf("Render: %v", err)
	}
	el := node.(*dom.MemElement)
	if _, ok := el.Attribute("data-role"); ok {
		t.Error("expected data-role to be removed")
	}
	if id, _ := el.Attribute("id"); id != "x" {
		t.Errorf("expected id to stay, got %q", id)
	}
}

func TestDiff_SVGNamespace(t *testing.T) {
	r, _, root := newTestRenderer(DefaultOptions())

	svg, err := r.Render(H("svg", nil, H("use", Props{"xlink:href": "#icon"})), root, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	use := svg.FirstChild().(*dom.MemElement)
	if use.NamespaceURI() != dom.SVGNamespace {
		t.Errorf("expected SVG namespace, got %q", use.NamespaceURI())
	}
	if href, ok := use.AttributeNS(dom.XLinkNamespace, "href"); !ok || href != "#icon" {
		t.Errorf("expected xlink href, got %q", href)
	}
}

func TestDiff_RawMarkupSkipsChildren(t *testing.T) {
	r, _, root := newTestRenderer(DefaultOptions())

	node, err := r.Render(H("div", Props{dom.InnerHTMLProp: dom.Markup{HTML: "<b>bold</b>"}}), root, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got, want := dom.InnerHTML(node), "<b>bold</b>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBuildComponent_ReusesOwner(t *testing.T) {
	rec := &recorder{}
	typ := probeType("Item", rec, func(_ *probe, props Props, _ State, _ Context) *Description {
		return H("li", nil, props["label"])
	})
	r, _, root := newTestRenderer(DefaultOptions())

	node, err := r.Render(C(typ, Props{"label": "one"}), root, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	first := r.OwnerOf(node)

	again, err := r.BuildComponent(node, C(typ, Props{"label": "two"}), nil, false)
	if err != nil {
		t.Fatalf("BuildComponent: %v", err)
	}
	if again != node {
		t.Error("expected the same host node")
	}
	if r.OwnerOf(again) != first || r.Instances() != 1 {
		t.Error("expected the existing instance to be reused")
	}
	if got := dom.TextContent(root); got != "two" {
		t.Errorf("expected updated label, got %q", got)
	}
	if n := rec.count("Item.WillReceiveProps"); n != 1 {
		t.Errorf("expected WillReceiveProps once, got %d", n)
	}
}

func TestBuildComponent_ReplacesOtherType(t *testing.T) {
	rec := &recorder{}
	a := probeType("A", rec, func(*probe, Props, State, Context) *Description { return H("a", nil) })
	b := probeType("B", rec, func(*probe, Props, State, Context) *Description { return H("b", nil) })
	r, _, root := newTestRenderer(DefaultOptions())

	node, err := r.Render(C(a, nil), root, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	rec.reset()

	if _, err := r.Render(C(b, nil), root, node); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []string{"A.WillUnmount", "B.WillMount", "B.DidMount"}
	if !equalCalls(rec.calls, want) {
		t.Errorf("got %v, want %v", rec.calls, want)
	}
	if got, want := dom.OuterHTML(root), `<body><b></b></body>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if r.Instances() != 1 {
		t.Errorf("expected 1 live instance, got %d", r.Instances())
	}
}

func TestRecycler_ReusesReleasedNode(t *testing.T) {
	rec := &recorder{}
	typ := probeType("Card", rec, func(*probe, Props, State, Context) *Description {
		return H("section", nil, H("h1", nil, "title"))
	})
	r, _, root := newTestRenderer(DefaultOptions())

	first, err := r.Mount(typ, nil, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	node := first.Output()
	if err := r.Unmount(first); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if hint := r.pool.(*Recycler).Hint(typ); hint != node {
		t.Fatal("expected released node to be kept as a hint")
	}

	second, err := r.Mount(typ, nil, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if second == first {
		t.Error("expected a fresh instance")
	}
	if second.Output() != node {
		t.Error("expected the released host node to be reused")
	}
	if got, want := dom.OuterHTML(root), `<body><section><h1>title</h1></section></body>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDelegate_SwitchType(t *testing.T) {
	rec := &recorder{}
	a := probeType("A", rec, func(*probe, Props, State, Context) *Description { return H("a", nil) })
	b := probeType("B", rec, func(*probe, Props, State, Context) *Description { return H("b", nil) })
	outer := probeType("Outer", rec, func(_ *probe, props Props, _ State, _ Context) *Description {
		if props["which"] == "b" {
			return C(b, nil)
		}
		return C(a, nil)
	})
	r, _, root := newTestRenderer(DefaultOptions())

	inst, err := r.Mount(outer, Props{"which": "a"}, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	old := inst.Delegate()
	rec.reset()

	if err := r.AssignProps(inst, Props{"which": "b"}, SyncRender, nil, false); err != nil {
		t.Fatalf("AssignProps: %v", err)
	}
	if d := inst.Delegate(); d == nil || d.Type() != b {
		t.Fatalf("expected B delegate")
	}
	if !old.Disabled() {
		t.Error("expected previous delegate to be torn down")
	}
	if root.FirstChild() != inst.Output() || len(root.ChildNodes()) != 1 {
		t.Error("expected the new output to replace the old one in place")
	}
	if r.OwnerOf(inst.Output()) != inst {
		t.Error("expected new output stamped with Outer")
	}
	for _, call := range []string{"A.WillUnmount", "B.WillMount", "B.DidMount", "Outer.DidUpdate"} {
		if rec.count(call) != 1 {
			t.Errorf("expected %s once, got calls %v", call, rec.calls)
		}
	}
}

func TestDelegate_KeyChangeReplaces(t *testing.T) {
	rec := &recorder{}
	leaf := probeType("Leaf", rec, nil)
	outer := probeType("Outer", rec, func(_ *probe, props Props, _ State, _ Context) *Description {
		return C(leaf, Props{"key": props["k"]})
	})
	r, _, root := newTestRenderer(DefaultOptions())

	inst, err := r.Mount(outer, Props{"k": 1}, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	first := inst.Delegate()

	if err := r.AssignProps(inst, Props{"k": 1}, SyncRender, nil, false); err != nil {
		t.Fatalf("AssignProps: %v", err)
	}
	if inst.Delegate() != first {
		t.Error("expected the delegate to be reused for an equal key")
	}

	if err := r.AssignProps(inst, Props{"k": 2}, SyncRender, nil, false); err != nil {
		t.Fatalf("AssignProps: %v", err)
	}
	if inst.Delegate() == first {
		t.Error("expected a new delegate for a different key")
	}
	if inst.Delegate().Key() != 2 {
		t.Errorf("expected key 2, got %v", inst.Delegate().Key())
	}
}

func TestDelegate_FalsyKeyReused(t *testing.T) {
	rec := &recorder{}
	leaf := probeType("Leaf", rec, nil)
	outer := probeType("Outer", rec, func(_ *probe, props Props, _ State, _ Context) *Description {
		return C(leaf, Props{"key": props["k"]})
	})
	r, _, root := newTestRenderer(DefaultOptions())

	for _, key := range []any{0, "", false} {
		inst, err := r.Mount(outer, Props{"k": key}, root)
		if err != nil {
			t.Fatalf("Mount: %v", err)
		}
		first := inst.Delegate()
		if err := r.AssignProps(inst, Props{"k": key}, SyncRender, nil, false); err != nil {
			t.Fatalf("AssignProps: %v", err)
		}
		if inst.Delegate() != first {
			t.Errorf("key %#v: expected the delegate to be reused", key)
		}
		if first.Key() != nil {
			t.Errorf("key %#v: expected no stored key, got %#v", key, first.Key())
		}
		if err := r.Unmount(inst); err != nil {
			t.Fatalf("Unmount: %v", err)
		}
	}
}

func TestDiff_StableRefHandle(t *testing.T) {
	r, _, root := newTestRenderer(DefaultOptions())

	var calls []any
	ref := dom.NewRef(func(target any) { calls = append(calls, target) })

	var node dom.Node
	for i := 0; i < 3; i++ {
		var err error
		node, err = r.Render(H("div", Props{"ref": ref, "id": i}), root, node)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	if len(calls) != 1 || calls[0] != node {
		t.Errorf("expected a single attach with the node, got %v", calls)
	}

	if _, err := r.Render(H("div", Props{"id": 3}), root, node); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(calls) != 2 || calls[1] != nil {
		t.Errorf("expected a detach once the ref is dropped, got %v", calls)
	}
}
