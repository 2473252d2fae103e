package gridview

// EventType identifies which piece of grid state changed.
type EventType int

const (
	EventRows EventType = iota
	EventSort
	EventFilter
	EventSelection
)

// Event describes a state change broadcast to subscribers.
type Event struct {
	Type EventType
}

// Subscribe adds a change listener and returns an unsubscribe function.
// listeners fire synchronously after the corresponding hook, in
// subscription order. Slots rendered by Table don't need this — they read
// the grid directly each frame — it exists for external observers
// (status bars, persistence, sibling widgets).
func (g *Grid[T]) Subscribe(fn func(Event)) func() {
	g.listeners = append(g.listeners, fn)
	idx := len(g.listeners) - 1
	return func() {
		// nil the slot rather than shrinking the slice, so other
		// unsubscribe closures keep their indices
		g.listeners[idx] = nil
	}
}

func (g *Grid[T]) notify(e Event) {
	for _, fn := range g.listeners {
		if fn != nil {
			fn(e)
		}
	}
}
