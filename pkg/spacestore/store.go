package spacestore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flowcore/engine/pkg/serialize"
)

// Entry is a stored NodeSpace document with its registry metadata.
type Entry struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Space       serialize.SpaceJSON `json:"space"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Summary is a lightweight reference to a stored entry, omitting its
// payload, for listing.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store is a thread-safe, in-memory registry of persisted node spaces.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Create registers a new entry and returns its generated id.
func (s *Store) Create(name, description string, space serialize.SpaceJSON) (string, error) {
	if name == "" {
		return "", ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	now := time.Now()
	s.entries[id] = &Entry{
		ID:          id,
		Name:        name,
		Description: description,
		Space:       space,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return id, nil
}

// Get returns the entry registered under id.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Update replaces the payload of an existing entry, bumping UpdatedAt.
func (s *Store) Update(id string, space serialize.SpaceJSON) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return ErrNotFound
	}
	entry.Space = space
	entry.UpdatedAt = time.Now()
	return nil
}

// Delete removes id from the store. It is a no-op if id is absent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// List returns a summary of every stored entry.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, Summary{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			CreatedAt:   entry.CreatedAt,
			UpdatedAt:   entry.UpdatedAt,
		})
	}
	return out
}
