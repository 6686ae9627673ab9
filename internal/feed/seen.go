package feed

import "sync"

// DefaultSeenCapacity bounds the seen-set for most watchers.
const DefaultSeenCapacity = 1000

// SeenSet is a bounded set of processed event ids with FIFO eviction.
// Insertion order is preserved so the set round-trips through the state
// file without losing its eviction order.
type SeenSet struct {
	mu    sync.Mutex
	max   int
	order []string
	index map[string]struct{}
}

// NewSeenSet creates a seen-set holding at most max ids.
func NewSeenSet(max int) *SeenSet {
	if max < 1 {
		max = DefaultSeenCapacity
	}
	return &SeenSet{
		max:   max,
		index: make(map[string]struct{}, max),
	}
}

// Contains reports whether the id has been marked and not yet evicted.
func (s *SeenSet) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// Mark records the id, evicting the oldest entries when over capacity.
// Marking an id that is already present is a no-op.
func (s *SeenSet) Mark(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; ok {
		return
	}

	s.order = append(s.order, id)
	s.index[id] = struct{}{}

	for len(s.order) > s.max {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.index, oldest)
	}
}

// Len returns the number of ids currently held.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot returns the held ids in insertion order, oldest first.
func (s *SeenSet) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Restore replaces the contents with ids in insertion order, keeping only
// the newest entries when more than the capacity are supplied.
func (s *SeenSet) Restore(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) > s.max {
		ids = ids[len(ids)-s.max:]
	}

	s.order = make([]string, 0, len(ids))
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.index[id]; ok {
			continue
		}
		s.order = append(s.order, id)
		s.index[id] = struct{}{}
	}
}
