package domain

import "fmt"

// Status is the state of a task within its batch. The set is closed.
type Status string

// Task statuses.
const (
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
	StatusActCreated Status = "act_created"
)

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusAccepted, StatusInProgress, StatusClosed, StatusActCreated}
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	_, err := StatusLabel(s)
	return err == nil
}

// Category is the visual family a status label is drawn with.
type Category string

// Label categories, named after the colour the console draws them in.
const (
	CategoryBlue   Category = "blue"
	CategoryYellow Category = "yellow"
	CategoryGreen  Category = "green"
	CategoryPurple Category = "purple"
)

// Label is the display text and visual category of a status.
type Label struct {
	Text     string   `json:"text"     yaml:"text"`
	Category Category `json:"category" yaml:"category"`
}

// StatusLabel maps a status to its label. There is no fallback: a value
// outside the closed set returns ErrUnknownStatus.
func StatusLabel(s Status) (Label, error) {
	switch s {
	case StatusAccepted:
		return Label{Text: "Принято", Category: CategoryBlue}, nil
	case StatusInProgress:
		return Label{Text: "В работе", Category: CategoryYellow}, nil
	case StatusClosed:
		return Label{Text: "Закрыто", Category: CategoryGreen}, nil
	case StatusActCreated:
		return Label{Text: "Акт сформирован", Category: CategoryPurple}, nil
	}
	return Label{}, fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
}
