package core

// Disposable is a resource released when the instance that owns it is torn
// down.
type Disposable interface {
	Dispose()
}

// Listenable notifies listeners when it changes. AddListener returns a
// function that removes the listener.
type Listenable interface {
	AddListener(listener func()) func()
}

// UseDisposable registers d for disposal when the instance is torn down and
// returns it.
//
// Example:
//
//	func (c *player) WillMount() {
//	    c.ticker = core.UseDisposable(&c.Base, newTicker())
//	}
func UseDisposable[D Disposable](b *Base, d D) D {
	b.OnUnmount(d.Dispose)
	return d
}

// UseListenable schedules a render whenever l changes. The subscription
// ends when the instance is torn down.
func UseListenable(b *Base, l Listenable) {
	unsub := l.AddListener(func() {
		if inst := b.Instance(); inst != nil && !inst.disabled {
			b.SetState(nil, nil)
		}
	})
	b.OnUnmount(unsub)
}

// Managed holds a value outside of State and schedules a render when it
// changes.
//
// Managed is NOT thread-safe. It must only be accessed from the goroutine
// that drives the renderer.
//
// Example:
//
//	type counter struct {
//	    core.Base
//	    count *core.Managed[int]
//	}
//
//	func (c *counter) WillMount() {
//	    c.count = core.NewManaged(&c.Base, 0)
//	}
type Managed[T any] struct {
	base  *Base
	value T
}

// NewManaged creates a managed value bound to b.
func NewManaged[T any](b *Base, initial T) *Managed[T] {
	return &Managed[T]{base: b, value: initial}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and schedules a render.
func (m *Managed[T]) Set(value T) {
	m.value = value
	m.base.SetState(nil, nil)
}

// Update applies transform to the current value and schedules a render.
func (m *Managed[T]) Update(transform func(T) T) {
	m.Set(transform(m.value))
}
