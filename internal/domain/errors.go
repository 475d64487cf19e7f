package domain

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for domain validation. Compare with errors.Is.
var (
	// ErrInvalidBatchID indicates a batch id that is not a positive integer.
	ErrInvalidBatchID = constError("batch id must be positive")

	// ErrStageOverflow indicates a stage counter whose current value exceeds its total.
	// This is a data-integrity fault in the upstream feed.
	ErrStageOverflow = constError("stage current exceeds total")

	// ErrNegativeCount indicates a negative counter or task count.
	ErrNegativeCount = constError("negative count")

	// ErrStageRegression indicates an attempt to decrease a stage counter.
	ErrStageRegression = constError("stage counter cannot decrease")

	// ErrUnknownStatus indicates a task status outside the closed set.
	ErrUnknownStatus = constError("unknown task status")

	// ErrNegativeAmount indicates a task with a negative monetary amount.
	ErrNegativeAmount = constError("negative task amount")

	// ErrInvalidDate indicates a date string in neither supported layout.
	ErrInvalidDate = constError("invalid date")

	// ErrTransitionNotAllowed indicates a status change rejected by the transition policy.
	ErrTransitionNotAllowed = constError("status transition not allowed")
)
