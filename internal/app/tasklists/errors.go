package tasklists

import (
	"errors"
	"fmt"

	"task-manager/internal/domain"
)

// Kind classifies an application error. The transport maps each kind to a status code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeListNotFound  = "LIST_NOT_FOUND"
	CodeTaskNotFound  = "TASK_NOT_FOUND"
	CodeTaskNotInList = "TASK_NOT_IN_LIST"
)

// Error is an application-layer error with a caller-facing message.
// Anything returned by Service that is not an *Error is unclassified.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code == "" {
		return fmt.Sprintf("app error (kind=%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) WithDetails(details map[string]any) *Error {
	if e == nil {
		return nil
	}
	cp := make(map[string]any, len(details))
	for k, v := range details {
		cp[k] = v
	}
	out := *e
	out.Details = cp
	return &out
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// NewValidationError is exported for the transport, which rejects malformed
// requests before they reach the service.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: message}
}

func listNotFound(id domain.ListID) *Error {
	return (&Error{
		Kind:    KindNotFound,
		Code:    CodeListNotFound,
		Message: fmt.Sprintf("List not found with id %d", id),
	}).WithDetails(map[string]any{"listId": int64(id)})
}

func taskNotFound(id domain.TaskID) *Error {
	return (&Error{
		Kind:    KindNotFound,
		Code:    CodeTaskNotFound,
		Message: fmt.Sprintf("Task not found with id %d", id),
	}).WithDetails(map[string]any{"taskId": int64(id)})
}

func taskNotInList(message string, taskID domain.TaskID, listID domain.ListID) *Error {
	return (&Error{
		Kind:    KindInvalidState,
		Code:    CodeTaskNotInList,
		Message: message,
	}).WithDetails(map[string]any{"taskId": int64(taskID), "listId": int64(listID)})
}
