package todo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// MemStore is an in-memory todo store. The collection lives for the
// process lifetime and is lost at exit.
//
// Handlers run on separate goroutines, so every operation takes the
// mutex; the id counter and the slice move together under it.
type MemStore struct {
	mu     sync.Mutex
	todos  []Todo
	nextID int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

// List returns a copy of the collection in insertion order.
func (s *MemStore) List(ctx context.Context) ([]Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Todo, len(s.todos))
	copy(out, s.todos)
	return out, nil
}

// Create appends a new todo. The title is trimmed and must be
// non-empty after trimming.
func (s *MemStore) Create(ctx context.Context, title string) (*Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Err: errors.New("must not be empty")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := Todo{
		ID:        s.nextID,
		Title:     title,
		Completed: false,
		CreatedAt: time.Now().Truncate(time.Microsecond),
	}
	s.nextID++
	s.todos = append(s.todos, t)
	cp := t
	return &cp, nil
}

// Get returns the todo with the given id.
func (s *MemStore) Get(ctx context.Context, id int64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	cp := s.todos[i]
	return &cp, nil
}

// Update replaces the title verbatim, empty included.
func (s *MemStore) Update(ctx context.Context, id int64, title string) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	s.todos[i].Title = title
	cp := s.todos[i]
	return &cp, nil
}

// Toggle inverts the completed flag.
func (s *MemStore) Toggle(ctx context.Context, id int64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	s.todos[i].Completed = !s.todos[i].Completed
	cp := s.todos[i]
	return &cp, nil
}

// Delete removes the todo. The counter never rewinds, so the id is
// never reissued.
func (s *MemStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return nil
}

// Count returns total and completed counts.
func (s *MemStore) Count(ctx context.Context) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	completed := 0
	for i := range s.todos {
		if s.todos[i].Completed {
			completed++
		}
	}
	return len(s.todos), completed, nil
}

// index returns the slice position for id, or -1. Caller holds mu.
func (s *MemStore) index(id int64) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}
