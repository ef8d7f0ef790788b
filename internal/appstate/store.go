package appstate

import "sync"

// Store owns the current State. Dispatch is safe to call from any goroutine;
// subscribers run synchronously on the dispatching goroutine.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func NewStore(initial State) *Store {
	return &Store{state: initial, subs: map[int]func(State){}}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and notifies subscribers when the state changed.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if !equal(prev, next) {
		for _, fn := range subs {
			fn(next)
		}
	}
	return next
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func equal(a, b State) bool {
	if a.EditMode != b.EditMode || a.Theme != b.Theme || a.Route != b.Route || a.Sync != b.Sync {
		return false
	}
	switch {
	case a.User == nil && b.User == nil:
		return true
	case a.User == nil || b.User == nil:
		return false
	default:
		return *a.User == *b.User
	}
}
