package core

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-drift/vdom/pkg/dom"
	"github.com/go-drift/vdom/pkg/errors"
)

func TestAssignProps_FreshHostInstance(t *testing.T) {
	rec := &recorder{}
	clicks := 0
	typ := probeType("Button", rec, func(_ *probe, props Props, _ State, _ Context) *Description {
		return H("div", Props{"class": props["class"], "onClick": props["onClick"]})
	})
	r, doc, _ := newTestRenderer(DefaultOptions())

	inst, err := r.Create(typ, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	err = r.AssignProps(inst, Props{"class": "a", "onClick": func(*dom.Event) { clicks++ }}, SyncRender, nil, false)
	if err != nil {
		t.Fatalf("AssignProps: %v", err)
	}

	el, ok := inst.Output().(*dom.MemElement)
	if !ok {
		t.Fatalf("expected element output, got %T", inst.Output())
	}
	if class, _ := el.Attribute("class"); class != "a" {
		t.Errorf("expected class 'a', got %q", class)
	}
	if n := el.ListenerCount("click"); n != 1 {
		t.Errorf("expected 1 click listener, got %d", n)
	}
	if n := rec.count("Button.WillMount"); n != 1 {
		t.Errorf("expected WillMount once, got %d", n)
	}
	if n := rec.count("Button.DidMount"); n != 1 {
		t.Errorf("expected DidMount once, got %d", n)
	}
	if n := rec.count("Button.DidUpdate"); n != 0 {
		t.Errorf("expected no DidUpdate, got %d", n)
	}

	doc.DispatchEvent(el, dom.NewEvent("click", nil))
	if clicks != 1 {
		t.Errorf("expected handler to run once, got %d", clicks)
	}
}

func TestMount_HookOrder(t *testing.T) {
	rec := &recorder{}
	leaf := probeType("Leaf", rec, func(*probe, Props, State, Context) *Description {
		return H("span", nil, "leaf")
	})
	inner := probeType("Inner", rec, func(*probe, Props, State, Context) *Description {
		return H("div", nil, C(leaf, nil))
	})
	outer := probeType("Outer", rec, delegateTo(inner))

	var observed []string
	opts := DefaultOptions()
	opts.AfterMount = func(inst *Instance) { observed = append(observed, inst.Type().Name) }
	r, _, root := newTestRenderer(opts)

	inst, err := r.Mount(outer, Props{"x": 1}, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	want := []string{
		"Outer.WillMount",
		"Inner.WillMount",
		"Leaf.WillMount",
		"Leaf.DidMount",
		"Inner.DidMount",
		"Outer.DidMount",
	}
	if !equalCalls(rec.calls, want) {
		t.Errorf("hook order:\n got %v\nwant %v", rec.calls, want)
	}
	if !equalCalls(observed, []string{"Leaf", "Inner", "Outer"}) {
		t.Errorf("AfterMount order: got %v", observed)
	}

	if inst.Type() != outer {
		t.Fatalf("expected Mount to return the outermost instance, got %s", inst.Type())
	}
	delegate := inst.Delegate()
	if delegate == nil || delegate.Type() != inner {
		t.Fatalf("expected Inner delegate, got %v", delegate)
	}
	if delegate.Owner() != inst {
		t.Error("expected delegate owner link back to Outer")
	}
	if inst.Output() != delegate.Output() || inst.Output() != root.FirstChild() {
		t.Error("expected Outer and Inner to share the attached output node")
	}
	if r.OwnerOf(root.FirstChild()) != inst {
		t.Error("expected node to be stamped with the outermost owner")
	}
	if r.Instances() != 3 {
		t.Errorf("expected 3 live instances, got %d", r.Instances())
	}
}

func TestSetState_SkippedDelegateUpdate(t *testing.T) {
	rec := &recorder{}
	leaf := probeType("Leaf", rec, nil)
	inner := probeType("Inner", rec, func(*probe, Props, State, Context) *Description {
		return H("div", nil, C(leaf, nil))
	})
	outer := probeType("Outer", rec, delegateTo(inner))
	r, _, root := newTestRenderer(DefaultOptions())

	inst, err := r.Mount(outer, nil, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	probeOf(inst.Delegate()).veto = true
	rec.reset()

	probeOf(inst).SetState(State{"n": 1}, nil)
	if !inst.Dirty() {
		t.Fatal("expected SetState to defer the render")
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []string{
		"Outer.ShouldUpdate",
		"Outer.WillUpdate",
		"Inner.WillReceiveProps",
		"Inner.ShouldUpdate",
		"Outer.DidUpdate",
	}
	if !equalCalls(rec.calls, want) {
		t.Errorf("hook order:\n got %v\nwant %v", rec.calls, want)
	}
	if probeOf(inst.Delegate()).renders != 1 {
		t.Errorf("expected skipped delegate to keep 1 render, got %d", probeOf(inst.Delegate()).renders)
	}
	if inst.Dirty() {
		t.Error("expected dirty flag cleared after Flush")
	}
}

func TestUnmount_DelegationChain(t *testing.T) {
	rec := &recorder{}
	leaf := probeType("Leaf", rec, func(*probe, Props, State, Context) *Description {
		return H("span", nil, "x")
	})
	c := probeType("C", rec, func(*probe, Props, State, Context) *Description {
		return H("div", nil, C(leaf, nil))
	})
	b := probeType("B", rec, delegateTo(c))
	a := probeType("A", rec, delegateTo(b))

	var unmounting []string
	opts := DefaultOptions()
	opts.BeforeUnmount = func(inst *Instance) { unmounting = append(unmounting, inst.Type().Name) }
	r, doc, root := newTestRenderer(opts)

	inst, err := r.Mount(a, nil, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	middle := inst.Delegate()
	bottom := middle.Delegate()
	if bottom == nil || bottom.Type() != c {
		t.Fatalf("expected C at the bottom of the chain")
	}

	removed := 0
	stop := doc.Observe(func(m dom.Mutation) {
		if m.Kind == dom.MutationChildList && m.Target == root && m.Value == "-div" {
			removed++
		}
	})
	defer stop()
	rec.reset()

	if err := r.Unmount(inst); err != nil {
		t.Fatalf("Unmount: %v", err)
	}

	want := []string{"A.WillUnmount", "B.WillUnmount", "C.WillUnmount", "Leaf.WillUnmount"}
	if !equalCalls(rec.calls, want) {
		t.Errorf("teardown order:\n got %v\nwant %v", rec.calls, want)
	}
	if !equalCalls(unmounting, componentNames(want)) {
		t.Errorf("BeforeUnmount order: got %v", unmounting)
	}
	if removed != 1 {
		t.Errorf("expected host node removed once, got %d", removed)
	}
	if root.FirstChild() != nil {
		t.Error("expected root to be empty")
	}
	for _, i := range []*Instance{inst, middle, bottom} {
		if !i.Disabled() || i.Output() != nil {
			t.Errorf("expected %s disabled with no output", i.Type())
		}
	}
	if r.Instances() != 0 {
		t.Errorf("expected no live instances, got %d", r.Instances())
	}
}

// componentNames strips the hook suffix from recorded calls.
func componentNames(calls []string) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i], _, _ = strings.Cut(c, ".")
	}
	return out
}

func TestRef_Order(t *testing.T) {
	rec := &recorder{}
	typ := probeType("Field", rec, nil)
	r, _, root := newTestRenderer(DefaultOptions())

	var got any
	ref := dom.Ref(func(v any) {
		got = v
		if v == nil {
			rec.add("ref:nil")
		} else {
			rec.add("ref:set")
		}
	})
	inst, err := r.Mount(typ, Props{"ref": ref, "key": "k"}, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	want := []string{"Field.WillMount", "ref:set", "Field.DidMount"}
	if !equalCalls(rec.calls, want) {
		t.Errorf("mount order:\n got %v\nwant %v", rec.calls, want)
	}
	if got != inst {
		t.Errorf("expected ref to receive the instance, got %v", got)
	}
	if _, ok := inst.Props()["ref"]; ok {
		t.Error("expected ref to be removed from props")
	}
	if _, ok := inst.Props()["key"]; ok {
		t.Error("expected key to be removed from props")
	}
	if inst.Key() != "k" {
		t.Errorf("expected key 'k', got %v", inst.Key())
	}

	rec.reset()
	if err := r.Unmount(inst); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	want = []string{"Field.WillUnmount", "ref:nil"}
	if !equalCalls(rec.calls, want) {
		t.Errorf("unmount order:\n got %v\nwant %v", rec.calls, want)
	}
}

func TestAssignProps_FalsyKeyKeepsStoredKey(t *testing.T) {
	rec := &recorder{}
	typ := probeType("Field", rec, nil)
	r, _, root := newTestRenderer(DefaultOptions())

	inst, err := r.Mount(typ, Props{"key": "k"}, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	for _, key := range []any{nil, 0, "", false} {
		if err := r.AssignProps(inst, Props{"key": key}, SyncRender, nil, false); err != nil {
			t.Fatalf("AssignProps: %v", err)
		}
		if inst.Key() != "k" {
			t.Errorf("key %#v replaced the stored key: got %#v", key, inst.Key())
		}
		if _, ok := inst.Props()["key"]; ok {
			t.Errorf("key %#v: expected key to be removed from props", key)
		}
	}
}

func TestAssignProps_Deferred(t *testing.T) {
	rec := &recorder{}
	var prev Props
	typ := NewType("Label", func() Component {
		return &probe{name: "Label", rec: rec, render: func(_ *probe, props Props, _ State, _ Context) *Description {
			return H("p", nil, props["x"])
		}}
	})
	r, _, root := newTestRenderer(Options{
		AfterUpdate: func(inst *Instance) { prev = inst.Props() },
	})

	flushes := 0
	queue := r.Scheduler().(*RenderQueue)
	queue.OnNeedsFlush = func() { flushes++ }

	inst, err := r.Mount(typ, Props{"x": 1}, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := dom.TextContent(root); got != "1" {
		t.Fatalf("expected first render to be synchronous, got %q", got)
	}

	for _, x := range []int{2, 3} {
		if err := r.AssignProps(inst, Props{"x": x}, AsyncRender, nil, false); err != nil {
			t.Fatalf("AssignProps: %v", err)
		}
	}
	if !inst.Dirty() {
		t.Error("expected instance to be dirty")
	}
	if queue.Len() != 1 || flushes != 1 {
		t.Errorf("expected one queued render and one flush signal, got %d and %d", queue.Len(), flushes)
	}
	if got := dom.TextContent(root); got != "1" {
		t.Errorf("expected output unchanged before Flush, got %q", got)
	}

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := dom.TextContent(root); got != "3" {
		t.Errorf("expected output '3' after Flush, got %q", got)
	}
	if probeOf(inst).renders != 2 {
		t.Errorf("expected 2 renders, got %d", probeOf(inst).renders)
	}
	if prev["x"] != 3 {
		t.Errorf("expected AfterUpdate to observe x=3, got %v", prev["x"])
	}
	if queue.Len() != 0 {
		t.Errorf("expected empty queue, got %d", queue.Len())
	}
}

func TestSetState_CallbacksLIFO(t *testing.T) {
	rec := &recorder{}
	typ := probeType("Counter", rec, func(_ *probe, _ Props, state State, _ Context) *Description {
		return H("span", nil, state["n"])
	})
	r, _, root := newTestRenderer(DefaultOptions())

	inst, err := r.Mount(typ, nil, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	p := probeOf(inst)

	var order []string
	p.SetState(State{"n": 1}, func() { order = append(order, "first") })
	p.SetState(State{"n": 2}, func() { order = append(order, "second") })
	if n := r.Scheduler().(*RenderQueue).Len(); n != 1 {
		t.Errorf("expected one queued render, got %d", n)
	}

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !equalCalls(order, []string{"second", "first"}) {
		t.Errorf("expected callbacks last-in-first-out, got %v", order)
	}
	if got := dom.TextContent(root); got != "2" {
		t.Errorf("expected merged state to render '2', got %q", got)
	}
	if n := rec.count("Counter.DidUpdate"); n != 1 {
		t.Errorf("expected one DidUpdate, got %d", n)
	}
}

func TestForceUpdate_BypassesShouldUpdate(t *testing.T) {
	rec := &recorder{}
	typ := probeType("Static", rec, nil)
	r, _, root := newTestRenderer(DefaultOptions())

	inst, err := r.Mount(typ, nil, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	p := probeOf(inst)
	p.veto = true

	p.SetState(State{"n": 1}, nil)
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if p.renders != 1 {
		t.Errorf("expected vetoed update to skip render, got %d renders", p.renders)
	}
	if inst.State()["n"] != 1 {
		t.Errorf("expected state to be applied even when skipped, got %v", inst.State())
	}

	rec.reset()
	called := false
	if err := p.ForceUpdate(func() { called = true }); err != nil {
		t.Fatalf("ForceUpdate: %v", err)
	}
	if p.renders != 2 {
		t.Errorf("expected forced render, got %d renders", p.renders)
	}
	if rec.count("Static.ShouldUpdate") != 0 {
		t.Error("expected ShouldUpdate to be bypassed")
	}
	if !called {
		t.Error("expected ForceUpdate callback to run")
	}
}

type themeProvider struct{}

func (themeProvider) Render(props Props, _ State, _ Context) *Description {
	return H("div", nil, props[ChildrenProp])
}

func (themeProvider) ChildContext() Context {
	return Context{"theme": "dark"}
}

func TestChildContext(t *testing.T) {
	provider := NewType("Provider", func() Component { return themeProvider{} })
	consumer := Func("Consumer", func(_ Props, ctx Context) *Description {
		return Text(fmt.Sprint(ctx["theme"]))
	})
	r, _, root := newTestRenderer(DefaultOptions())

	if _, err := r.Render(C(provider, nil, C(consumer, nil)), root, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := dom.TextContent(root); got != "dark" {
		t.Errorf("expected consumer to read context, got %q", got)
	}
}

func TestRender_PanicBecomesHookError(t *testing.T) {
	boom := Func("Boom", func(Props, Context) *Description {
		panic("kaboom")
	})
	r, _, root := newTestRenderer(DefaultOptions())

	_, err := r.Mount(boom, nil, root)
	var hookErr *errors.HookError
	if !stderrors.As(err, &hookErr) {
		t.Fatalf("expected *errors.HookError, got %T: %v", err, err)
	}
	if hookErr.Component != "Boom" {
		t.Errorf("expected component Boom, got %q", hookErr.Component)
	}
	if hookErr.Op != "Render" {
		t.Errorf("expected op Render, got %q", hookErr.Op)
	}
	if hookErr.Recovered != "kaboom" {
		t.Errorf("expected recovered value, got %v", hookErr.Recovered)
	}
	if r.diffLevel != 0 || r.entered != 0 {
		t.Errorf("expected counters reset, got diffLevel=%d entered=%d", r.diffLevel, r.entered)
	}

	ok := Func("OK", func(Props, Context) *Description { return H("i", nil) })
	if _, err := r.Mount(ok, nil, root); err != nil {
		t.Errorf("expected renderer usable after a panic, got %v", err)
	}
}

type failingDiffer struct {
	HostDiffer
}

func (failingDiffer) Diff(dom.Node, *Description, Context, bool, dom.Node) (dom.Node, error) {
	return nil, fmt.Errorf("host rejected node")
}

func TestRender_DifferErrorKeepsLevelBalanced(t *testing.T) {
	doc := dom.NewMemDocument()
	r := NewRenderer(doc, DefaultOptions(), WithDiffer(failingDiffer{}))

	_, err := r.Render(H("div", nil), doc.CreateElement("body"), nil)
	var diffErr *errors.Error
	if !stderrors.As(err, &diffErr) {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	if diffErr.Kind != errors.KindDiff {
		t.Errorf("expected diff kind, got %s", diffErr.Kind)
	}
	if r.diffLevel != 0 {
		t.Errorf("expected diffLevel 0, got %d", r.diffLevel)
	}
}

type capturingHandler struct {
	errs  []*errors.Error
	hooks []*errors.HookError
}

func (h *capturingHandler) HandleError(err *errors.Error) {
	h.errs = append(h.errs, err)
}

func (h *capturingHandler) HandlePanic(*errors.PanicError) {}

func (h *capturingHandler) HandleHookError(err *errors.HookError) {
	h.hooks = append(h.hooks, err)
}

func TestRender_ErrorsReportedOnce(t *testing.T) {
	handler := &capturingHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	doc := dom.NewMemDocument()
	r := NewRenderer(doc, DefaultOptions(), WithDiffer(failingDiffer{}))
	if _, err := r.Render(H("div", nil), doc.CreateElement("body"), nil); err == nil {
		t.Fatal("expected differ error")
	}
	if len(handler.errs) != 1 || handler.errs[0].Kind != errors.KindDiff {
		t.Fatalf("expected one reported diff error, got %v", handler.errs)
	}

	outer := probeType("Outer", &recorder{}, delegateTo(Func("Boom", func(Props, Context) *Description {
		panic("kaboom")
	})))
	r2, _, root := newTestRenderer(DefaultOptions())
	if _, err := r2.Mount(outer, nil, root); err == nil {
		t.Fatal("expected hook error")
	}
	if len(handler.hooks) != 1 || handler.hooks[0].Component != "Boom" {
		t.Errorf("expected one reported hook error for Boom, got %v", handler.hooks)
	}
	if len(handler.errs) != 1 {
		t.Errorf("expected no further plain errors, got %d", len(handler.errs))
	}
}

func TestAssignProps_DisabledIsNoop(t *testing.T) {
	rec := &recorder{}
	typ := probeType("Gone", rec, nil)
	r, _, root := newTestRenderer(DefaultOptions())

	inst, err := r.Mount(typ, nil, root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := r.Unmount(inst); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	rec.reset()

	if err := r.AssignProps(inst, Props{"x": 1}, SyncRender, nil, false); err != nil {
		t.Fatalf("AssignProps: %v", err)
	}
	if err := r.RenderComponent(inst, ForceRender, false); err != nil {
		t.Fatalf("RenderComponent: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("expected no hooks on a torn-down instance, got %v", rec.calls)
	}
	if inst.Props()["x"] != nil {
		t.Error("expected props unchanged")
	}
}
