package watch

import (
	"slices"
	"testing"
)

func TestSubscribersToggle(t *testing.T) {
	s := NewSubscribers()

	if on := s.Toggle(10); !on {
		t.Error("first Toggle = false, want true")
	}
	if on := s.Toggle(10); on {
		t.Error("second Toggle = true, want false")
	}
	if s.Contains(10) {
		t.Error("Contains(10) = true after toggling off")
	}
}

func TestSubscribersListSorted(t *testing.T) {
	s := NewSubscribers()
	for _, id := range []int64{30, 10, 20} {
		s.Toggle(id)
	}

	got := s.List()
	want := []int64{10, 20, 30}
	if !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestSubscribersRemove(t *testing.T) {
	s := NewSubscribers()
	s.Toggle(1)
	s.Toggle(2)

	s.Remove(1)
	s.Remove(99) // unknown id is a no-op

	if s.Len() != 1 || !s.Contains(2) {
		t.Errorf("after Remove: Len = %d, Contains(2) = %v, want 1 and true", s.Len(), s.Contains(2))
	}
}

func TestSubscribersRestore(t *testing.T) {
	s := NewSubscribers()
	s.Restore([]int64{5, 6, 5})

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (duplicates collapse)", s.Len())
	}
}
