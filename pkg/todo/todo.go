// Package todo holds the todo record and its store contract.
package todo

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Todo represents a single item on the list.
type Todo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when an operation targets an id absent
// from the store.
var ErrNotFound = errors.New("todo not found")

// ValidationError reports a rejected field on create.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Store is the contract for todo storage.
type Store interface {
	// List returns every todo in insertion order.
	List(ctx context.Context) ([]Todo, error)
	// Create validates the title, assigns the next id, and appends
	// a new incomplete todo.
	Create(ctx context.Context, title string) (*Todo, error)
	// Get returns the todo with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Todo, error)
	// Update replaces the stored title verbatim. It does not
	// re-validate emptiness the way Create does.
	Update(ctx context.Context, id int64, title string) (*Todo, error)
	// Toggle inverts the completed flag.
	Toggle(ctx context.Context, id int64) (*Todo, error)
	// Delete removes the todo permanently. Its id is never reissued.
	Delete(ctx context.Context, id int64) error
	// Count returns total and completed counts.
	Count(ctx context.Context) (total, completed int, err error)
}
