package core

import (
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/dom"
	"github.com/go-drift/vdom/pkg/errors"
)

// Renderer drives component lifecycles against a host document.
//
// A Renderer is single-threaded: all methods, and every SetState or
// ForceUpdate on instances it owns, must be called from one goroutine.
type Renderer struct {
	doc       dom.Document
	opts      Options
	log       *zap.Logger
	accessor  *dom.Accessor
	differ    HostDiffer
	pool      Pool
	scheduler Scheduler

	instances map[InstanceID]*Instance
	lastID    InstanceID
	stamps    map[dom.Node]stamp

	// mounts holds instances whose DidMount is pending.
	mounts []*Instance
	// diffLevel counts active calls into the host differ.
	diffLevel int
	// entered counts active public entry points.
	entered int
	// active is the instance whose lifecycle code ran most recently.
	active *Instance
}

// stamp records the outermost instance that owns a host node.
type stamp struct {
	id  InstanceID
	typ *ComponentType
}

// NewRenderer creates a renderer for doc.
func NewRenderer(doc dom.Document, opts Options, options ...Option) *Renderer {
	r := &Renderer{
		doc:       doc,
		opts:      opts,
		log:       opts.Logger,
		accessor:  dom.NewAccessor(opts.Event),
		instances: make(map[InstanceID]*Instance),
		stamps:    make(map[dom.Node]stamp),
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	for _, opt := range options {
		opt(r)
	}
	if r.differ == nil {
		r.differ = newTreeDiffer(r)
	}
	if r.pool == nil {
		r.pool = NewRecycler()
	}
	if r.scheduler == nil {
		r.scheduler = NewRenderQueue()
	}
	return r
}

// Document returns the host document.
func (r *Renderer) Document() dom.Document { return r.doc }

// Accessor returns the attribute reconciler used for host props.
func (r *Renderer) Accessor() *dom.Accessor { return r.accessor }

// Scheduler returns the deferred render scheduler.
func (r *Renderer) Scheduler() Scheduler { return r.scheduler }

// Render reconciles merge (which may be nil) with desc under parent and
// returns the resulting host node. Pending DidMount hooks run before Render
// returns.
func (r *Renderer) Render(desc *Description, parent, merge dom.Node) (dom.Node, error) {
	var out dom.Node
	err := r.guard("Render", nil, func() error {
		var err error
		out, err = r.diff(merge, desc, nil, false, parent)
		if err != nil {
			return err
		}
		if r.diffLevel == 0 {
			r.flushMounts()
		}
		return nil
	})
	return out, err
}

// Mount renders a component description for typ under parent and returns
// the outermost instance that owns the resulting node.
func (r *Renderer) Mount(typ *ComponentType, props Props, parent dom.Node) (*Instance, error) {
	node, err := r.Render(C(typ, props), parent, nil)
	if err != nil {
		return nil, err
	}
	return r.OwnerOf(node), nil
}

// Create allocates an instance of typ owned by r. The instance has no
// output until props are assigned with a rendering mode.
func (r *Renderer) Create(typ *ComponentType, props Props, ctx Context) (*Instance, error) {
	var inst *Instance
	err := r.guard("Create", nil, func() error {
		inst = r.acquire(typ, props, ctx)
		return nil
	})
	return inst, err
}

// AssignProps applies new props (and context) to inst and renders
// according to mode. It is a no-op while inst is disabled.
func (r *Renderer) AssignProps(inst *Instance, props Props, mode RenderMode, ctx Context, mountAll bool) error {
	return r.guard("AssignProps", inst, func() error {
		return r.setProps(inst, props, mode, ctx, mountAll)
	})
}

// RenderComponent re-renders inst. It is a no-op while inst is disabled.
func (r *Renderer) RenderComponent(inst *Instance, mode RenderMode, mountAll bool) error {
	return r.guard("RenderComponent", inst, func() error {
		return r.renderComponent(inst, mode, mountAll, false)
	})
}

// BuildComponent reconciles node with a component description and returns
// the host node the component now renders to.
func (r *Renderer) BuildComponent(node dom.Node, desc *Description, ctx Context, mountAll bool) (dom.Node, error) {
	var out dom.Node
	err := r.guard("BuildComponent", nil, func() error {
		var err error
		out, err = r.buildComponent(node, desc, ctx, mountAll)
		return err
	})
	return out, err
}

// Unmount tears inst down along with its delegate chain.
func (r *Renderer) Unmount(inst *Instance) error {
	return r.guard("Unmount", inst, func() error {
		r.unmount(inst)
		return nil
	})
}

// Flush renders every instance the render queue still holds as dirty.
// Schedulers that do not implement Drainer are left alone.
func (r *Renderer) Flush() error {
	drainer, ok := r.scheduler.(Drainer)
	if !ok {
		return nil
	}
	return r.guard("Flush", nil, func() error {
		for {
			pending := drainer.Drain()
			if len(pending) == 0 {
				return nil
			}
			for _, inst := range pending {
				if !inst.dirty {
					continue
				}
				if err := r.renderComponent(inst, AsyncRender, false, false); err != nil {
					return err
				}
			}
		}
	})
}

// OwnerOf returns the outermost instance whose output is node.
func (r *Renderer) OwnerOf(node dom.Node) *Instance {
	s, ok := r.stamps[node]
	if !ok {
		return nil
	}
	return r.lookup(s.id)
}

// Instances returns the number of live instances.
func (r *Renderer) Instances() int {
	return len(r.instances)
}

// guard runs fn as a public entry point. The outermost entry converts a
// panic raised by component code into a *errors.HookError and reports any
// error it returns; nested entries let both reach the outermost one.
func (r *Renderer) guard(op string, inst *Instance, fn func() error) (err error) {
	if r.entered > 0 {
		return fn()
	}
	r.entered++
	if inst != nil {
		r.active = inst
	}
	defer func() {
		r.entered--
		if rec := recover(); rec != nil {
			hookErr := &errors.HookError{
				Op:         op,
				Recovered:  rec,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			if r.active != nil {
				hookErr.Component = r.active.name()
			}
			if e, ok := rec.(error); ok {
				hookErr.Err = e
			}
			err = hookErr
		}
		errors.Report(err)
	}()
	return fn()
}

// diff calls the host differ, keeping diffLevel balanced on every exit path.
func (r *Renderer) diff(prev dom.Node, desc *Description, ctx Context, mountAll bool, parent dom.Node) (dom.Node, error) {
	r.diffLevel++
	defer func() { r.diffLevel-- }()
	node, err := r.differ.Diff(prev, desc, ctx, mountAll, parent)
	if err != nil {
		var diffErr *errors.Error
		if stderrors.As(err, &diffErr) {
			return nil, err
		}
		return nil, &errors.Error{Op: "core.Renderer.diff", Kind: errors.KindDiff, Err: err}
	}
	return node, nil
}

func (r *Renderer) enqueue(inst *Instance) {
	if inst.dirty {
		return
	}
	inst.dirty = true
	r.log.Debug("render deferred", zap.String("component", inst.name()), zap.Uint64("id", uint64(inst.id)))
	r.scheduler.Schedule(inst)
}

// acquire obtains an instance from the pool and tracks it.
func (r *Renderer) acquire(typ *ComponentType, props Props, ctx Context) *Instance {
	if typ == nil || typ.New == nil {
		panic(fmt.Sprintf("core: component type %v has no constructor", typ))
	}
	inst := r.pool.Acquire(typ, props, ctx)
	r.track(inst)
	return inst
}

func (r *Renderer) track(inst *Instance) {
	if inst.id != 0 && r.instances[inst.id] == inst {
		return
	}
	r.lastID++
	inst.id = r.lastID
	inst.renderer = r
	r.instances[inst.id] = inst
}

func (r *Renderer) untrack(inst *Instance) {
	if r.instances[inst.id] == inst {
		delete(r.instances, inst.id)
	}
}

func (r *Renderer) lookup(id InstanceID) *Instance {
	if id == 0 {
		return nil
	}
	return r.instances[id]
}

func (r *Renderer) stamp(node dom.Node, inst *Instance) {
	r.stamps[node] = stamp{id: inst.id, typ: inst.typ}
}

func (r *Renderer) unstamp(node dom.Node) {
	delete(r.stamps, node)
}
