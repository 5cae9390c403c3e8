package tasklists

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"task-manager/internal/domain"
)

// ValidateListInput checks a list name: required, at most domain.MaxNameLength characters.
func ValidateListInput(name string) error {
	return checkField("List name", name, domain.MaxNameLength)
}

// ValidateTaskInput checks a task payload. Both fields are required; the first
// failing rule is reported, name before description.
func ValidateTaskInput(name, description string) error {
	if err := checkField("Task name", name, domain.MaxNameLength); err != nil {
		return err
	}
	return checkField("Task description", description, domain.MaxDescriptionLength)
}

func checkField(label, v string, max int) error {
	if strings.TrimSpace(v) == "" {
		return NewValidationError(label + " is required")
	}
	if utf8.RuneCountInString(v) > max {
		return NewValidationError(fmt.Sprintf("%s must be at most %d characters", label, max))
	}
	return nil
}
