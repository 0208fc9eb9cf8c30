package core

import "sync"

// RenderQueue collects instances whose render was deferred. It coalesces
// repeated requests for the same instance until the queue is drained.
type RenderQueue struct {
	pending []*Instance
	queued  map[*Instance]bool
	mu      sync.Mutex

	// OnNeedsFlush is called when the queue goes from empty to non-empty,
	// signalling the host that Renderer.Flush should run soon (for example
	// on the next animation frame).
	OnNeedsFlush func()
}

// NewRenderQueue creates an empty RenderQueue.
func NewRenderQueue() *RenderQueue {
	return &RenderQueue{}
}

// Schedule queues inst for rendering.
func (q *RenderQueue) Schedule(inst *Instance) {
	first := func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.queued[inst] {
			return false
		}
		if q.queued == nil {
			q.queued = make(map[*Instance]bool)
		}
		q.queued[inst] = true
		q.pending = append(q.pending, inst)
		return len(q.pending) == 1
	}()

	if first && q.OnNeedsFlush != nil {
		q.OnNeedsFlush()
	}
}

// Len returns the number of queued instances.
func (q *RenderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain empties the queue and returns its contents in scheduling order.
func (q *RenderQueue) Drain() []*Instance {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.pending
	q.pending = nil
	clear(q.queued)
	return pending
}
