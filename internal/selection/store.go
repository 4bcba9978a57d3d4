package selection

import "sync"

// Store holds the shared selection state behind a get/set/subscribe surface.
//
// Every mutation is an atomic whole-state replace. Subscribers receive the
// new state after each replace; they are invoked outside any write lock held
// by other goroutines but must not call back into the store synchronously.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  map[int]func(State)
	next  int
}

// NewStore creates an empty selection store.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(State))}
}

// Get returns the current state value.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the whole state and notifies subscribers.
func (s *Store) Set(next State) {
	s.mu.Lock()
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Update applies a pure reducer to the current state and stores the result.
func (s *Store) Update(fn func(State) State) {
	s.mu.Lock()
	next := fn(s.state)
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
}

// Subscribe registers a listener for state replacements and returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
