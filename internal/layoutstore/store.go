// Package layoutstore remembers the preferred grid shape for every
// monitor and profile pair.
package layoutstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultProfile is the profile used when none has been selected.
const DefaultProfile = "Default"

// Key identifies a layout by monitor and profile.
type Key struct {
	Monitor string
	Profile string
}

func (k Key) String() string {
	return k.Monitor + ":" + k.Profile
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, error) {
	monitor, profile, ok := strings.Cut(s, ":")
	if !ok || monitor == "" || profile == "" {
		return Key{}, fmt.Errorf("invalid layout key %q", s)
	}
	return Key{Monitor: monitor, Profile: profile}, nil
}

// Entry is a remembered grid shape.
type Entry struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// DefaultEntry returns the 2x2 shape used for keys without history.
func DefaultEntry() Entry {
	return Entry{Rows: 2, Columns: 2}
}

func (e Entry) valid() bool {
	return e.Rows >= 1 && e.Columns >= 1
}

// Store is a file-backed map of layouts. It is safe for concurrent use.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[Key]Entry
}

// DefaultPath returns $XDG_CACHE_HOME/gridsnap/layouts.yaml.
func DefaultPath() (string, error) {
	path, err := xdg.CacheFile(filepath.Join("gridsnap", "layouts.yaml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve layout cache path: %w", err)
	}
	return path, nil
}

// Load reads the layouts stored at path. A missing, unreadable or corrupt
// file yields a store holding only the default entry for current; Load
// never fails.
func Load(path string, current Key) *Store {
	s := &Store{path: path}
	entries, err := readEntries(path)
	if err != nil || len(entries) == 0 {
		entries = map[Key]Entry{current: DefaultEntry()}
	}
	s.entries = entries
	return s
}

// Read returns the layouts stored at path. Unlike Load it reports why a
// file could not be used.
func Read(path string) (map[Key]Entry, error) {
	return readEntries(path)
}

func readEntries(path string) (map[Key]Entry, error) {
	if path == "" {
		return nil, fmt.Errorf("layout path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layouts: %w", err)
	}

	var raw map[string]Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse layouts: %w", err)
	}

	entries := make(map[Key]Entry, len(raw))
	for k, e := range raw {
		key, err := ParseKey(k)
		if err != nil || !e.valid() {
			continue
		}
		entries[key] = e
	}
	return entries, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the entry for key, or the default entry if none is stored.
func (s *Store) Get(key Key) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		return e
	}
	return DefaultEntry()
}

// Put upserts the entry for key. Invalid shapes are clamped to 1x1.
func (s *Store) Put(key Key, e Entry) {
	e.Rows = max(e.Rows, 1)
	e.Columns = max(e.Columns, 1)

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// Keys returns the stored keys in a stable order.
func (s *Store) Keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]Key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Save rewrites the whole map to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	raw := make(map[string]Entry, len(s.entries))
	for k, e := range s.entries {
		raw[k.String()] = e
	}
	s.mu.Unlock()

	if s.path == "" {
		return fmt.Errorf("layout path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode layouts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layouts: %w", err)
	}
	return nil
}
