package domain

import "fmt"

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// Stage names one of the three sequential approval phases of a batch.
type Stage string

// Stages in the order a batch passes through them.
const (
	StageAccepted Stage = "accepted"
	StageSigned   Stage = "signed"
	StagePaid     Stage = "paid"
)

// Stages returns all stages in lifecycle order.
func Stages() []Stage {
	return []Stage{StageAccepted, StageSigned, StagePaid}
}

// StageProgress is a current/total counter pair for one stage.
// Total is fixed once set; Current only grows and never exceeds Total.
type StageProgress struct {
	Current int `json:"current" yaml:"current"`
	Total   int `json:"total"   yaml:"total"`
}

// Validate checks the counter invariants.
func (s StageProgress) Validate() error {
	if s.Current < 0 || s.Total < 0 {
		return fmt.Errorf("%w: %d of %d", ErrNegativeCount, s.Current, s.Total)
	}
	if s.Current > s.Total {
		return fmt.Errorf("%w: %d of %d", ErrStageOverflow, s.Current, s.Total)
	}
	return nil
}

// Advance returns the progress with Current moved to current.
// Decreasing the counter or passing Total is rejected.
func (s StageProgress) Advance(current int) (StageProgress, error) {
	if current < s.Current {
		return s, fmt.Errorf("%w: %d -> %d", ErrStageRegression, s.Current, current)
	}
	next := StageProgress{Current: current, Total: s.Total}
	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}

// Complete reports whether every task of the stage has passed it.
// A stage with no tasks is never complete.
func (s StageProgress) Complete() bool {
	return s.Total > 0 && s.Current == s.Total
}

// String renders the counter as "current из total", the console's wording.
func (s StageProgress) String() string {
	return fmt.Sprintf("%d из %d", s.Current, s.Total)
}

// ProgressPercent returns 100*Current/Total, or 0 when Total is 0.
func ProgressPercent(s StageProgress) float64 {
	if s.Total == 0 {
		return 0
	}
	return percentMultiplier * float64(s.Current) / float64(s.Total)
}
