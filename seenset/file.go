package seenset

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileStore persists the set as a JSON array of link strings.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the persisted array. An absent, unreadable, or malformed file
// is recoverable: it logs a warning and returns an empty set.
func (f *FileStore) Load() (*Set, error) {
	set := NewSet()

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read seen-set file %s: %v\n", f.Path, err)
		}
		return set, nil
	}

	var links []string
	if err := json.Unmarshal(data, &links); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: seen-set file %s is malformed, starting with no history: %v\n", f.Path, err)
		return set, nil
	}

	for _, link := range links {
		set.Add(link)
	}
	return set, nil
}

// Save overwrites the file with the full current set (0600: owner-only
// read/write).
func (f *FileStore) Save(set *Set) error {
	data, err := json.MarshalIndent(set.Links(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen-set: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write seen-set: %w", err)
	}
	return nil
}
