package watch

import (
	"slices"
	"sync"
)

// Subscribers is the set of chats that opted in to a watcher's alerts.
type Subscribers struct {
	mu  sync.Mutex
	set map[int64]struct{}
}

// NewSubscribers creates an empty registry.
func NewSubscribers() *Subscribers {
	return &Subscribers{set: make(map[int64]struct{})}
}

// Toggle flips a chat's membership and returns the new state. Toggling
// twice always lands back where it started.
func (s *Subscribers) Toggle(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.set[chatID]; ok {
		delete(s.set, chatID)
		return false
	}
	s.set[chatID] = struct{}{}
	return true
}

// Contains reports membership.
func (s *Subscribers) Contains(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[chatID]
	return ok
}

// Remove drops a chat. Removing an absent chat is a no-op.
func (s *Subscribers) Remove(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.set, chatID)
}

// Len returns the subscriber count.
func (s *Subscribers) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.set)
}

// List returns the members sorted, for stable iteration and persistence.
func (s *Subscribers) List() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int64, 0, len(s.set))
	for id := range s.set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Restore replaces the membership with the given ids.
func (s *Subscribers) Restore(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.set[id] = struct{}{}
	}
}
