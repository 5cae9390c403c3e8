// Package taskrepo is the outbound port for task persistence.
package taskrepo

import (
	"context"
	"errors"

	"task-manager/internal/domain"
)

var (
	ErrNotFound = errors.New("task not found")
	// ErrListNotFound is returned when a task would reference a list that does not exist.
	ErrListNotFound = errors.New("owning list not found")
)

type Task struct {
	ID          domain.TaskID
	ListID      domain.ListID
	Name        string
	Description string
}

type Repository interface {
	// Create stores t (its ID is ignored) and returns it with a generated ID.
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id domain.TaskID) (Task, error)
	// Save overwrites name, description and owning list of an existing task.
	Save(ctx context.Context, t Task) error
	Delete(ctx context.Context, id domain.TaskID) error
}
