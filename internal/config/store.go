package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys stored in the config file.
const (
	KeyAPI = "api"
	// KeyToken is where older versions kept the session token. It is only
	// read to migrate it into the token file.
	KeyToken = "token"
)

const fileMode = 0o600

// Store is the key-value document backing .groceries.yml. It is read whole,
// mutated in memory and written back whole; there is no locking, so two
// concurrent invocations can overwrite each other's changes.
type Store struct {
	path   string
	values map[string]any
}

// Load reads the document at path. A missing, empty or unparseable file
// yields an empty store; only the latter is logged. Load never creates the
// file.
func Load(path string, log *slog.Logger) *Store {
	s := &Store{path: path, values: map[string]any{}}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("unable to read config file, starting empty", "path", path, "error", err)
		}
		return s
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		log.Warn("unable to parse config file, starting empty", "path", path, "error", err)
		return s
	}
	if values != nil {
		s.values = values
	}
	return s
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key. Empty values count as absent.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok || v == nil {
		return "", false
	}
	str := strings.TrimSpace(fmt.Sprint(v))
	return str, str != ""
}

// Has reports whether key holds a non-empty value.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set assigns value to key in memory. Call Write to persist it.
func (s *Store) Set(key, value string) {
	s.values[key] = value
}

// Delete removes key in memory. Call Write to persist it.
func (s *Store) Delete(key string) {
	delete(s.values, key)
}

// Values returns a copy of the document, suitable for merging into other
// configuration layers.
func (s *Store) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Write serializes the document back to disk, replacing the previous
// content. The file is owner read/write only.
func (s *Store) Write() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing config file: %w", err)
	}

	// OpenFile only applies the mode on creation.
	if err := os.Chmod(s.path, fileMode); err != nil {
		return fmt.Errorf("restricting config file permissions: %w", err)
	}
	return nil
}
