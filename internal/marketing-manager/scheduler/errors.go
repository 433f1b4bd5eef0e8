package scheduler

import "errors"

var (
	// ErrInvalidTaskType is returned by Create when the requested type is
	// outside the closed enumeration. No record is created.
	ErrInvalidTaskType = errors.New("invalid task type")

	// ErrTaskNotFound is returned by operations referencing an unknown task_id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidParameters is returned by Create when the parameters violate
	// the task type's schema.
	ErrInvalidParameters = errors.New("invalid task parameters")
)
