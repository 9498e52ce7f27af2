package story

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/gorewood/folio/internal/output"
	"github.com/gorewood/folio/internal/slug"
)

// ErrNotFound is the cause of the error Find returns for an unknown slug.
var ErrNotFound = errors.New("story not found")

// Store reads story documents from a directory tree.
// Any .json, .yaml, .yml or .toml file below the root is a candidate.
type Store struct {
	dir string
}

// Entry is a story together with where it was loaded from.
type Entry struct {
	Path  string `json:"path"`
	Slug  string `json:"slug"`
	Story *Story `json:"story"`
}

// ListStats reports how many candidate files were seen and skipped.
type ListStats struct {
	Total   int `json:"total"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store root.
func (s *Store) Dir() string {
	return s.dir
}

// DirExists returns true if the store root exists and is a directory.
func (s *Store) DirExists() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// List returns every story under the root, sorted by path.
// Files that fail to parse are counted in stats and skipped.
// A missing root yields empty results.
func (s *Store) List() ([]*Entry, *ListStats, error) {
	stats := &ListStats{}
	var entries []*Entry

	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := FormatFromPath(path); !ok {
			return nil
		}

		stats.Total++
		st, readErr := ReadFile(path)
		if readErr != nil {
			stats.Skipped++
			return nil
		}
		entries = append(entries, &Entry{Path: path, Slug: slug.Make(st.Title), Story: st})
		stats.Parsed++
		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ListStats{}, nil
		}
		return nil, nil, output.NewSystemErrorWithCause("failed to walk story directory", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, stats, nil
}

// Find returns the first story whose title slug equals want.
func (s *Store) Find(want string) (*Entry, error) {
	entries, _, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Slug == want {
			return entry, nil
		}
	}
	return nil, output.NewUserErrorWithCause("story not found: "+want, ErrNotFound)
}
