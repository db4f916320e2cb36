// Package event provides a small in-process event dispatcher. The app
// fires "order.completed" when a meal plan order finishes so side
// effects (notification mail, plan archival) stay off the request
// path.
package event

import "sync"

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name. Handlers fire
// in registration order for Fire, concurrently for FireAsync.
func Listen(event string, handler Handler) {
	mu.Lock()
	handlers[event] = append(handlers[event], handler)
	mu.Unlock()
}

// listenersFor snapshots the handler list so handlers can register
// further listeners without deadlocking.
func listenersFor(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range listenersFor(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to each listener on its own
// goroutine and returns immediately.
func FireAsync(event string, payload interface{}) {
	for _, h := range listenersFor(event) {
		go h(payload)
	}
}

// Flush removes all listeners. Tests use it to isolate suites.
func Flush() {
	mu.Lock()
	handlers = map[string][]Handler{}
	mu.Unlock()
}
