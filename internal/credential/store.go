// Package credential persists the session token in a single-line,
// owner-only file next to the config file.
package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const fileMode = 0o600

// ErrEmptyToken is returned when asked to persist a blank token.
var ErrEmptyToken = errors.New("empty token")

// Store reads and writes the bearer token file.
type Store struct {
	path string
}

// NewStore returns a Store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Read returns the stored token, or "" when the file is missing or
// unreadable. Surrounding whitespace is trimmed so a hand-edited file with a
// trailing newline still works.
func (s *Store) Read() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line)
}

// Present reports whether a non-empty token is stored.
func (s *Store) Present() bool {
	return s.Read() != ""
}

// Write replaces the token file with token, trimmed. The file is owner
// read/write only.
func (s *Store) Write(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	if err := os.WriteFile(s.path, []byte(token), fileMode); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	// WriteFile only applies the mode on creation.
	if err := os.Chmod(s.path, fileMode); err != nil {
		return fmt.Errorf("restricting token file permissions: %w", err)
	}
	return nil
}

// Delete removes the token file. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
