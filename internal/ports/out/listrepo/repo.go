// Package listrepo is the outbound port for task-list persistence.
package listrepo

import (
	"context"
	"errors"

	"task-manager/internal/domain"
)

var ErrNotFound = errors.New("list not found")

// List is the stored form of a task list, without its tasks.
type List struct {
	ID   domain.ListID
	Name string
}

type Repository interface {
	// Create stores a new list and returns it with its generated ID.
	Create(ctx context.Context, name string) (List, error)
	GetByID(ctx context.Context, id domain.ListID) (List, error)
	// Delete removes the list and every task it owns.
	Delete(ctx context.Context, id domain.ListID) error
	// ListWithTasks returns every list with its tasks populated in a single fetch.
	// Lists are ordered by ID ascending, tasks within a list by ID ascending.
	ListWithTasks(ctx context.Context) ([]domain.TaskList, error)
}
