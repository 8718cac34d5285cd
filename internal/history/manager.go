// Package history persists prompt history, such as step search queries,
// between sessions.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// SearchFile holds the step search history
const SearchFile = "search.toml"

// Manager loads and saves history files in one directory
type Manager struct {
	dir string
}

// File is the on-disk layout of a history file
type File struct {
	Entries []string `toml:"entries"`
}

// DefaultDir returns ~/.local/share/code-wave/history
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "code-wave", "history"), nil
}

// NewManager creates a manager for the default history directory
func NewManager() (*Manager, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewManagerInDir(dir)
}

// NewManagerInDir creates a manager for dir, creating it if needed
func NewManagerInDir(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the directory history files live in
func (m *Manager) Dir() string {
	return m.dir
}

// Load reads the entries of name. A missing or corrupt file yields no
// entries.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, nil
	}
	return f.Entries, nil
}

// Save replaces the entries of name
func (m *Manager) Save(name string, entries []string) error {
	data, err := toml.Marshal(File{Entries: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.dir, name), data, 0644)
}
