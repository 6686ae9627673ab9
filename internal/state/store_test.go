package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testSection struct {
	Cursor string `json:"cursor"`
	Count  int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "state.json"), nil)
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("buyback", testSection{Cursor: "0xabc", Count: 7}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var got testSection
	ok, err := s.Load("buyback", &got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Load reported missing section after Save")
	}
	if got.Cursor != "0xabc" || got.Count != 7 {
		t.Errorf("Load = %+v, want {0xabc 7}", got)
	}
}

func TestLoadMissingSection(t *testing.T) {
	s := newTestStore(t)

	var got testSection
	ok, err := s.Load("nope", &got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Load reported a section that was never saved")
	}
}

func TestSavePreservesSiblingSections(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("buyback", testSection{Cursor: "a"}); err != nil {
		t.Fatalf("Save buyback failed: %v", err)
	}
	if err := s.Save("whale", testSection{Cursor: "b"}); err != nil {
		t.Fatalf("Save whale failed: %v", err)
	}
	// Overwrite one section; the other must survive untouched.
	if err := s.Save("buyback", testSection{Cursor: "a2"}); err != nil {
		t.Fatalf("Save buyback again failed: %v", err)
	}

	var buyback, whale testSection
	if _, err := s.Load("buyback", &buyback); err != nil {
		t.Fatalf("Load buyback failed: %v", err)
	}
	if _, err := s.Load("whale", &whale); err != nil {
		t.Fatalf("Load whale failed: %v", err)
	}

	if buyback.Cursor != "a2" {
		t.Errorf("buyback cursor = %q, want %q", buyback.Cursor, "a2")
	}
	if whale.Cursor != "b" {
		t.Errorf("whale cursor = %q, want %q", whale.Cursor, "b")
	}
}

func TestMissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-written.json"), nil)

	var got testSection
	ok, err := s.Load("any", &got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Load found a section in a missing file")
	}
}

func TestCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path, nil)

	var got testSection
	ok, err := s.Load("any", &got)
	if err != nil {
		t.Fatalf("Load failed on corrupt file: %v", err)
	}
	if ok {
		t.Error("Load found a section in a corrupt file")
	}

	// Saving over the corrupt file must succeed and produce valid JSON.
	if err := s.Save("fresh", testSection{Cursor: "x"}); err != nil {
		t.Fatalf("Save over corrupt file failed: %v", err)
	}
	if _, err := s.Load("fresh", &got); err != nil {
		t.Fatalf("Load after recovery failed: %v", err)
	}
	if got.Cursor != "x" {
		t.Errorf("cursor = %q, want %q", got.Cursor, "x")
	}
}

func TestDocumentIsPrettyPrinted(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("buyback", testSection{Cursor: "a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("state file is not indented:\n%s", data)
	}
}

func TestSections(t *testing.T) {
	s := newTestStore(t)
	s.Save("a", testSection{})
	s.Save("b", testSection{})

	got := s.Sections()
	if len(got) != 2 {
		t.Errorf("Sections() = %v, want 2 entries", got)
	}
}
