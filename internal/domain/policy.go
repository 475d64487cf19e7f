package domain

import (
	"fmt"
	"slices"
)

// TransitionPolicy decides which statuses a task may move to next.
// Transitions are driven by business events outside this module, so the
// rule is injected rather than fixed.
type TransitionPolicy interface {
	AllowedNext(from Status) []Status
}

// PolicyFunc adapts a plain function to TransitionPolicy.
type PolicyFunc func(from Status) []Status

// AllowedNext implements TransitionPolicy.
func (f PolicyFunc) AllowedNext(from Status) []Status {
	return f(from)
}

// LinearPolicy allows accepted -> in_progress -> closed -> act_created and nothing else.
//
//nolint:gochecknoglobals // Stateless default policy.
var LinearPolicy TransitionPolicy = PolicyFunc(linearNext)

func linearNext(from Status) []Status {
	switch from {
	case StatusAccepted:
		return []Status{StatusInProgress}
	case StatusInProgress:
		return []Status{StatusClosed}
	case StatusClosed:
		return []Status{StatusActCreated}
	case StatusActCreated:
		return nil
	}
	return nil
}

// CheckTransition returns nil when policy allows from -> to.
func CheckTransition(policy TransitionPolicy, from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(to))
	}
	if slices.Contains(policy.AllowedNext(from), to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
}
