// Package domain holds the task-manager entities shared by the app layer and adapters.
package domain

const (
	// MaxNameLength is the maximum number of characters in a list or task name.
	MaxNameLength = 128
	// MaxDescriptionLength is the maximum number of characters in a task description.
	MaxDescriptionLength = 128
)

type ListID int64

type TaskID int64

// TaskList is a named container that exclusively owns its tasks.
type TaskList struct {
	ID    ListID
	Name  string
	Tasks []Task
}

// Task is owned by exactly one TaskList at any time.
type Task struct {
	ID          TaskID
	ListID      ListID
	Name        string
	Description string
}
