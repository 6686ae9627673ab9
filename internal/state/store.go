package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is a section-keyed JSON document on disk.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load unmarshals a section into the given value. The second return is
// false when the section does not exist; into is left untouched then.
func (s *Store) Load(section string, into any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.readDoc()
	raw, ok := doc[section]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return false, fmt.Errorf("decode section %q: %w", section, err)
	}
	return true, nil
}

// Save marshals the payload into its section and rewrites the document,
// preserving all other sections.
func (s *Store) Save(section string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode section %q: %w", section, err)
	}

	doc := s.readDoc()
	doc[section] = raw

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Sections returns the names of all persisted sections.
func (s *Store) Sections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.readDoc()
	out := make([]string, 0, len(doc))
	for name := range doc {
		out = append(out, name)
	}
	return out
}

// readDoc loads the whole document. Missing or corrupt files come back as
// an empty document so a bad state file never takes the bot down.
// Must be called with the lock held.
func (s *Store) readDoc() map[string]json.RawMessage {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("state file unreadable, starting empty",
				"path", s.path,
				"error", err,
			)
		}
		return map[string]json.RawMessage{}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("state file corrupt, starting empty",
			"path", s.path,
			"error", err,
		)
		return map[string]json.RawMessage{}
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc
}
