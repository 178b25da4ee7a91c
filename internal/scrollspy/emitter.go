package scrollspy

import "sync"

// Emitter is an in-process EventSource. Emit calls every current listener
// in registration order.
type Emitter struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func()
	order     []int
}

func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[int]func())}
}

func (e *Emitter) Subscribe(fn func()) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := e.next
	e.next++
	e.listeners[key] = fn
	e.order = append(e.order, key)
	return &emitterSub{emitter: e, key: key}
}

// Emit notifies listeners. Listeners may unsubscribe during delivery.
func (e *Emitter) Emit() {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.order))
	for _, k := range e.order {
		if fn, ok := e.listeners[k]; ok {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered listeners.
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

func (e *Emitter) remove(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.listeners[key]; !ok {
		return
	}
	delete(e.listeners, key)
	for i, k := range e.order {
		if k == key {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

type emitterSub struct {
	emitter *Emitter
	key     int
}

func (s *emitterSub) Unsubscribe() {
	s.emitter.remove(s.key)
}
