package core

// Component produces a description from its inputs. Render is the only
// required method; the optional lifecycle hooks are detected by the
// interfaces below.
//
// Components that need to update themselves embed Base:
//
//	type counter struct {
//	    core.Base
//	}
//
//	func (c *counter) Render(props core.Props, state core.State, ctx core.Context) *core.Description {
//	    return core.H("button", core.Props{
//	        "onClick": func(*dom.Event) { c.SetState(core.State{"n": state["n"].(int) + 1}, nil) },
//	    }, state["n"])
//	}
type Component interface {
	Render(props Props, state State, ctx Context) *Description
}

// StateInitializer supplies an instance's initial state when it is created.
type StateInitializer interface {
	InitialState(props Props, ctx Context) State
}

// WillMounter is called before an instance's first render.
type WillMounter interface {
	WillMount()
}

// DidMounter is called once the instance's first output is attached and the
// outermost render pass has completed.
type DidMounter interface {
	DidMount()
}

// PropsReceiver is called before new props are applied to a mounted instance.
type PropsReceiver interface {
	WillReceiveProps(next Props, ctx Context)
}

// UpdateDecider can veto a re-render. While it runs the instance still
// reports its previous props, state and context.
type UpdateDecider interface {
	ShouldUpdate(next Props, nextState State, ctx Context) bool
}

// WillUpdater is called before a non-skipped re-render with the incoming values.
type WillUpdater interface {
	WillUpdate(next Props, nextState State, ctx Context)
}

// DidUpdater is called after a non-skipped re-render with the previous values.
type DidUpdater interface {
	DidUpdate(prevProps Props, prevState State, prevCtx Context)
}

// WillUnmounter is called before an instance is torn down.
type WillUnmounter interface {
	WillUnmount()
}

// ChildContextProvider extends the context passed to the instance's output.
type ChildContextProvider interface {
	ChildContext() Context
}

// ComponentType is the constructor identity of a component. Two descriptions
// delegate to the same kind of instance only if they share the same
// *ComponentType.
type ComponentType struct {
	// Name is used in logs and errors.
	Name string
	// New allocates a fresh component value.
	New func() Component
	// DefaultProps fill in props left unset by a description.
	DefaultProps Props
}

// NewType returns a ComponentType.
func NewType(name string, newFn func() Component) *ComponentType {
	return &ComponentType{Name: name, New: newFn}
}

// WithDefaults sets the type's default props and returns the type.
func (t *ComponentType) WithDefaults(props Props) *ComponentType {
	t.DefaultProps = props
	return t
}

func (t *ComponentType) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// Func adapts a render function into a component type with no state.
func Func(name string, render func(props Props, ctx Context) *Description) *ComponentType {
	return NewType(name, func() Component { return funcComponent(render) })
}

type funcComponent func(props Props, ctx Context) *Description

func (f funcComponent) Render(props Props, _ State, ctx Context) *Description {
	return f(props, ctx)
}
