package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yomu-dev/yomu/internal/log"
)

// maxEntries bounds the locally kept history.  Older reads fall off the end.
const maxEntries = 10

// Entry is one locally recorded read
type Entry struct {
	MangaID       int       `yaml:"manga_id"`
	MangaTitle    string    `yaml:"manga_title"`
	ChapterID     int       `yaml:"chapter_id"`
	ChapterNumber string    `yaml:"chapter_number"`
	ReadAt        time.Time `yaml:"read_at"`
}

// Store keeps the recent-reads list on disk so it survives restarts and works
// without an account.  Entries are ordered most recent first and deduplicated
// per manga: rereading a manga moves it to the front with the new chapter.
type Store struct {
	path string

	mu      sync.Mutex
	entries []Entry
}

// Open loads the history file at path, creating an empty store if the file
// does not exist yet.
func Open(path string) (*Store, error) {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if err := yaml.Unmarshal(data, &store.entries); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	if len(store.entries) > maxEntries {
		store.entries = store.entries[:maxEntries]
	}

	log.Debug("Loaded reading history", "path", path, "entries", len(store.entries))
	return store, nil
}

// Record notes a read at the front of the list, replacing any previous entry
// for the same manga, and persists the result.
func (s *Store) Record(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ReadAt.IsZero() {
		entry.ReadAt = time.Now()
	}

	kept := make([]Entry, 0, len(s.entries)+1)
	kept = append(kept, entry)
	for _, existing := range s.entries {
		if existing.MangaID == entry.MangaID {
			continue
		}
		kept = append(kept, existing)
	}
	if len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}
	s.entries = kept

	return s.save()
}

// Entries returns a copy of the history, most recent first
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear empties the history and persists the empty list
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.save()
}

// save writes the current entries to disk.  Caller must hold the lock.
func (s *Store) save() error {
	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
