package core

import "github.com/go-drift/vdom/pkg/dom"

// HostDiffer materializes host output for a description.
type HostDiffer interface {
	// Diff reconciles prev (which may be nil) with desc and returns the
	// resulting node. mountAll marks a brand-new subtree. When parent is
	// not nil the result is attached under it.
	Diff(prev dom.Node, desc *Description, ctx Context, mountAll bool, parent dom.Node) (dom.Node, error)
	// Recollect disposes of a node that is no longer part of the output.
	// With unmountOnly set, a node that was produced by the differ is left
	// in place for its ancestor to remove.
	Recollect(node dom.Node, unmountOnly bool)
	// RemoveChildren recollects every descendant of node.
	RemoveChildren(node dom.Node)
}

// Pool supplies and reclaims instances.
type Pool interface {
	Acquire(typ *ComponentType, props Props, ctx Context) *Instance
	Release(inst *Instance)
}

// Scheduler defers renders. Schedule is called at most once per instance
// until the instance renders again.
type Scheduler interface {
	Schedule(inst *Instance)
}

// Drainer is implemented by schedulers whose queue the renderer empties
// in Flush.
type Drainer interface {
	Drain() []*Instance
}
