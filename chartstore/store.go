package chartstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/stelliumhq/stellium/errors"
)

// Store is the process-wide chart table. Many readers or one writer at a
// time; mutations flush the full table to disk synchronously before
// returning, so disk and memory are never observably inconsistent to a
// subsequent reader.
type Store struct {
	mu     sync.RWMutex
	charts map[string]*NatalChart
	path   string
}

// Load opens the store backed by the given file. A missing file is an empty
// store, not an error; anything else unreadable or unparseable is.
func Load(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create storage directory")
		}
	}

	charts := make(map[string]*NatalChart)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run.
	case err != nil:
		return nil, errors.Wrap(err, "failed to read chart storage")
	default:
		if err := json.Unmarshal(data, &charts); err != nil {
			return nil, errors.Wrap(err, "failed to parse chart storage")
		}
	}

	return &Store{charts: charts, path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save inserts or overwrites the chart at its composite key, then flushes.
// On flush failure the in-memory write is kept: readers already see it, and
// rolling it back would make the error ambiguous about which state
// survived. The caller gets the flush error either way.
func (s *Store) Save(chart *NatalChart) error {
	s.mu.Lock()
	s.charts[chart.Key()] = chart
	s.mu.Unlock()

	return s.flush()
}

// GetExact returns the chart at the exact composite key, or ok=false.
func (s *Store) GetExact(name, birthDate string) (*NatalChart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chart, ok := s.charts[chartKey(name, birthDate)]
	return chart, ok
}

// GetByName returns a chart matching the name alone. When several birth
// dates share the name the one with the smallest key wins, so the answer is
// deterministic; callers needing a specific chart should use GetExact.
func (s *Store) GetByName(name string) (*NatalChart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *NatalChart
	var bestKey string
	for key, chart := range s.charts {
		if chart.Name != name {
			continue
		}
		if best == nil || key < bestKey {
			best, bestKey = chart, key
		}
	}
	return best, best != nil
}

// Default returns the first chart in key order, the reference chart used
// when a tool call names no one. ok is false on an empty store.
func (s *Store) Default() (*NatalChart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.charts))
	for key := range s.charts {
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, false
	}
	sort.Strings(keys)
	return s.charts[keys[0]], true
}

// List returns summaries of every chart, ordered by key.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.summarize(func(*NatalChart) bool { return true })
}

// Search returns summaries of charts whose name contains the query,
// case-insensitively, ordered by key.
func (s *Store) Search(query string) []Summary {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.summarize(func(c *NatalChart) bool {
		return strings.Contains(strings.ToLower(c.Name), q)
	})
}

// summarize must be called with at least a read lock held.
func (s *Store) summarize(match func(*NatalChart) bool) []Summary {
	keys := make([]string, 0, len(s.charts))
	for key, chart := range s.charts {
		if match(chart) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]Summary, 0, len(keys))
	for _, key := range keys {
		c := s.charts[key]
		out = append(out, Summary{Name: c.Name, BirthDate: c.BirthDate, BirthLocation: c.BirthLocation})
	}
	return out
}

// DeleteExact removes the chart at the exact composite key and flushes.
// removed reports whether anything was there.
func (s *Store) DeleteExact(name, birthDate string) (removed bool, err error) {
	key := chartKey(name, birthDate)

	s.mu.Lock()
	_, removed = s.charts[key]
	delete(s.charts, key)
	s.mu.Unlock()

	if !removed {
		return false, nil
	}
	return true, s.flush()
}

// flush rewrites the entire backing file from the current table. Snapshot
// persistence keeps recovery trivial (load-or-empty); the write
// amplification is acceptable at personal-use chart counts.
func (s *Store) flush() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.charts, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, "failed to serialize charts")
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write chart storage")
	}
	return nil
}

// Count returns the number of stored charts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.charts)
}
