package state

import "sync"

// Store owns the catalog UI state. Dispatch is the only way to change it.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	subs     map[int]chan struct{}
	nextSub  int
}

// NewStore returns a store holding the initial state.
func NewStore() *Store {
	return &Store{snapshot: Initial(), subs: make(map[int]chan struct{})}
}

// Dispatch applies ev atomically, notifies subscribers and returns a copy of
// the resulting state.
func (s *Store) Dispatch(ev Event) Snapshot {
	s.mu.Lock()
	s.snapshot = Reduce(s.snapshot, ev)
	snap := s.snapshot.Clone()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.mu.Unlock()
	return snap
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Subscribe returns a channel that receives a value after each dispatch.
// Notifications coalesce: a reader that falls behind sees one pending signal.
// Call cancel to stop receiving; the channel is closed.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}
