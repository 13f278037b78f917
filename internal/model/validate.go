package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateSeason checks a Season for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the season is valid.
func ValidateSeason(s *Season) error {
	var ve ValidationError

	name := strings.TrimSpace(s.Name)
	if name == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	} else if len([]rune(name)) > 200 {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "must be 200 characters or fewer"})
	}

	if !s.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", s.Status),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateTask checks a Task for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the task is valid.
// Precedence codes are deliberately not checked against the season's task
// collection here: dangling references are legal graph state and are handled
// by the timeline resolver.
func ValidateTask(t *Task) error {
	var ve ValidationError

	if strings.TrimSpace(t.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}

	if !validOrderCode(t.Order) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "order",
			Message: fmt.Sprintf("must be an uppercase column code (A, B, ..., AA), got %q", t.Order),
		})
	}

	for _, p := range t.PrecedingTasks {
		if !validOrderCode(p) {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "preceding_tasks",
				Message: fmt.Sprintf("entry %q is not a valid order code", p),
			})
		}
	}

	if t.LeadTime < 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "lead_time",
			Message: fmt.Sprintf("must be non-negative, got %d", t.LeadTime),
		})
	}

	if !t.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", t.Status),
		})
	}

	// ActualCompletion consistency with Status. A completed task may lack a
	// date: clearing the date keeps the task completed. The reverse does not
	// hold, a date on a non-completed task is inconsistent.
	if t.Status != TaskCompleted && t.ActualCompletion != nil {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "actual_completion",
			Message: "must be nil when status is not completed",
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// validOrderCode reports whether s is a non-empty run of ASCII uppercase letters.
func validOrderCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
