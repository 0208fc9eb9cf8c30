package testing

import (
	"fmt"

	"github.com/go-drift/vdom/pkg/dom"
)

// Dispatch fires an event of type typ at the first node matched by finder
// and then flushes deferred renders.
func (t *Tester) Dispatch(finder Finder, typ string, detail any) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("dispatch %s: no node found: %s", typ, finder.Description())
	}
	t.doc.DispatchEvent(result.First(), dom.NewEvent(typ, detail))
	return t.Pump()
}

// Tap dispatches a click at the first node matched by finder.
func (t *Tester) Tap(finder Finder) error {
	return t.Dispatch(finder, "click", nil)
}

// Input sets the value property of the first element matched by finder
// and dispatches an input event.
func (t *Tester) Input(finder Finder, value string) error {
	result := t.Find(finder)
	el, ok := result.FirstOrNil().(dom.Element)
	if !ok {
		return fmt.Errorf("input: no element found: %s", finder.Description())
	}
	if err := el.SetProperty("value", value); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	t.doc.DispatchEvent(el, dom.NewEvent("input", value))
	return t.Pump()
}
