// Package core drives component lifecycles against a host document.
//
// A Renderer turns Descriptions into host nodes. A Description is one of
// three variants: a host element (H), a text node (Text) or output
// delegated to a component (C). Components implement Component and opt
// into lifecycle hooks by implementing the hook interfaces (WillMounter,
// DidMounter, PropsReceiver, UpdateDecider, WillUpdater, DidUpdater,
// WillUnmounter, ChildContextProvider).
//
// # Delegation
//
// A component whose render returns a component description is a
// high-order component: the returned component becomes its delegate and
// supplies its output node. Delegate and owner links are stored as
// InstanceIDs, so a chain is walked by id rather than pointer.
//
// # Updates
//
// AssignProps and RenderComponent update an instance directly. SetState
// and the Managed and UseListenable hooks defer the render to the
// Scheduler; the default RenderQueue holds dirty instances until
// Renderer.Flush runs.
//
//	r := core.NewRenderer(dom.NewMemDocument(), core.DefaultOptions())
//	inst, err := r.Mount(counterType, core.Props{"start": 1}, root)
//	...
//	r.Flush()
//
// # Errors
//
// Hooks do not return errors. A panic raised by component code is
// recovered at the outermost public entry point and returned as an
// *errors.HookError. Every error an outermost entry point returns, differ
// failures included, is reported to the errors package handler first.
//
// A Renderer is not safe for concurrent use.
package core
