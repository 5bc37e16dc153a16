// Package mockapi is an in-memory implementation of the grocery API used
// for local development and end-to-end tests of the client.
package mockapi

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/groceries/pkg/types"
)

// ErrItemNotFound is returned for an unknown item ID.
var ErrItemNotFound = errors.New("item not found")

// Store holds users, sessions and the shared grocery list.
type Store struct {
	mu       sync.Mutex
	users    map[string]string
	sessions map[string]string
	items    []domain.Item
	nextID   int
	newToken func() string
}

// NewStore returns an empty store. Item IDs start at 1.
func NewStore() *Store {
	return &Store{
		users:    map[string]string{},
		sessions: map[string]string{},
		nextID:   1,
		newToken: uuid.NewString,
	}
}

// AddUser registers username with password, replacing any previous one.
func (s *Store) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// Login returns a new session token when the credentials match.
func (s *Store) Login(username, password string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want, ok := s.users[username]
	if !ok || want != password {
		return "", false
	}
	token := s.newToken()
	s.sessions[token] = username
	return token, true
}

// Authorized reports whether token belongs to a live session.
func (s *Store) Authorized(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

// Items returns a copy of the list in insertion order.
func (s *Store) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Add appends name to the list. Duplicate names are allowed.
func (s *Store) Add(name string) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.Item{ID: s.nextID, Name: name}
	s.nextID++
	s.items = append(s.items, item)
	return item
}

// Purchase marks the item with id as bought.
func (s *Store) Purchase(id int) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return domain.Item{}, ErrItemNotFound
	}
	s.items[i].Purchased = true
	return s.items[i], nil
}

// Remove deletes the item with id.
func (s *Store) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.items, func(it domain.Item) bool { return it.ID == id })
}
