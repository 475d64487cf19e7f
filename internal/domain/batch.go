package domain

import "fmt"

// TaskBatch is a named group of tasks tracked together through acceptance,
// signing and payment.
type TaskBatch struct {
	ID        int           `json:"id"         yaml:"id"`
	Name      string        `json:"name"       yaml:"name"`
	TaskCount int           `json:"task_count" yaml:"task_count"`
	CreatedAt Date          `json:"created_at" yaml:"created_at"`
	Accepted  StageProgress `json:"accepted"   yaml:"accepted"`
	Signed    StageProgress `json:"signed"     yaml:"signed"`
	Paid      StageProgress `json:"paid"       yaml:"paid"`
}

// Validate rejects records that break the batch invariants.
// A stage with current > total fails fast rather than being clamped.
func (b TaskBatch) Validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchID, b.ID)
	}
	if b.TaskCount < 0 {
		return fmt.Errorf("batch %d: task count: %w", b.ID, ErrNegativeCount)
	}
	for _, stage := range Stages() {
		if err := b.Progress(stage).Validate(); err != nil {
			return fmt.Errorf("batch %d: stage %s: %w", b.ID, stage, err)
		}
	}
	return nil
}

// Progress returns the counter for the given stage.
func (b TaskBatch) Progress(stage Stage) StageProgress {
	switch stage {
	case StageAccepted:
		return b.Accepted
	case StageSigned:
		return b.Signed
	case StagePaid:
		return b.Paid
	}
	return StageProgress{}
}

// FullyAccepted reports whether every task in the batch was accepted.
func (b TaskBatch) FullyAccepted() bool { return b.Accepted.Complete() }

// FullySigned reports whether every task in the batch was signed.
func (b TaskBatch) FullySigned() bool { return b.Signed.Complete() }

// FullyPaid reports whether every task in the batch was paid.
func (b TaskBatch) FullyPaid() bool { return b.Paid.Complete() }
