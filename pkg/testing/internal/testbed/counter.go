// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/dom"
)

// Counter displays a count in a button and increments it on click. Props:
// "initial" (int) seeds the count, "onTap" (func(int)) observes clicks.
var Counter = core.NewType("Counter", func() core.Component { return &counter{} }).
	WithDefaults(core.Props{"initial": 0})

type counter struct {
	core.Base
}

func (c *counter) InitialState(props core.Props, _ core.Context) core.State {
	return core.State{"count": props["initial"]}
}

func (c *counter) Render(props core.Props, state core.State, _ core.Context) *core.Description {
	count, _ := state["count"].(int)
	return core.H("button", core.Props{
		"class": "counter",
		"onClick": func(*dom.Event) {
			c.SetState(core.State{"count": count + 1}, nil)
			if onTap, ok := props["onTap"].(func(int)); ok {
				onTap(count + 1)
			}
		},
	}, count)
}

// Field is an input that mirrors its value into a label.
var Field = core.NewType("Field", func() core.Component { return &field{} })

type field struct {
	core.Base
}

func (f *field) Render(_ core.Props, state core.State, _ core.Context) *core.Description {
	return core.H("form", nil,
		core.H("input", core.Props{
			"value": state["value"],
			"onInput": func(e *dom.Event) {
				f.SetState(core.State{"value": e.Detail}, nil)
			},
		}),
		core.H("label", nil, state["value"]),
	)
}

// Panel delegates to Counter or Field depending on the "show" prop.
var Panel = core.Func("Panel", func(props core.Props, _ core.Context) *core.Description {
	if props["show"] == "field" {
		return core.C(Field, nil)
	}
	return core.C(Counter, core.Props{"initial": props["initial"]})
})
