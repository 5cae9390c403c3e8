package httpapi

import (
	"github.com/oapi-codegen/nullable"

	"task-manager/internal/domain"
)

// Request fields are tri-state so that a missing or null value reaches
// validation as blank rather than failing to decode.

type CreateTaskListRequest struct {
	Name nullable.Nullable[string] `json:"name"`
}

type TaskRequest struct {
	Name        nullable.Nullable[string] `json:"name"`
	Description nullable.Nullable[string] `json:"description"`
}

type TaskResponse struct {
	ID          int64  `json:"id"`
	ListID      int64  `json:"listId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TaskListResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Tasks []TaskResponse `json:"tasks"`
}

type ErrorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

func valueOrEmpty(n nullable.Nullable[string]) string {
	v, err := n.Get()
	if err != nil {
		return ""
	}
	return v
}

func taskFromDomain(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          int64(t.ID),
		ListID:      int64(t.ListID),
		Name:        t.Name,
		Description: t.Description,
	}
}

func taskListFromDomain(l domain.TaskList) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		tasks = append(tasks, taskFromDomain(t))
	}
	return TaskListResponse{ID: int64(l.ID), Name: l.Name, Tasks: tasks}
}
