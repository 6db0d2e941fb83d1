package Scheduler

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrCompletionNotFound = errors.New("completion not found")
	ErrEquipmentNotFound  = errors.New("equipment not found")
)

// ValidationError rejects a request before any state mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// InvariantError reports schedule fields that conflict with the task's
// trigger type, e.g. a usage reading supplied for a time-triggered task.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return e.Message
}
