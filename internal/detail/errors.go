package detail

import "errors"

// Detail errors.
var (
	ErrInvalidTaskReference = errors.New("task is not in the batch")
	ErrDuplicateTaskID      = errors.New("duplicate task id")
	ErrEmptySelection       = errors.New("no tasks selected")
	ErrNoDispatcher         = errors.New("no dispatcher configured")
)
