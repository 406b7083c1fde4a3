package store

import "github.com/google/uuid"

type EventOp string

const (
	EventAdded   EventOp = "added"
	EventUpdated EventOp = "updated"
	EventDeleted EventOp = "deleted"
)

// Event describes a completed mutation. IDs lists the affected records.
type Event struct {
	Op  EventOp
	IDs []uuid.UUID
}

// Listener is called synchronously after a mutation, outside the store lock.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// Subscribe registers fn for change events and returns a function that
// removes it again.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		fns = append(fns, l.fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
