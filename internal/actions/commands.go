package actions

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Command validation errors.
var (
	ErrEmptyTaskIDs        = errors.New("command has no task ids")
	ErrUnknownActType      = errors.New("unknown act type")
	ErrUnknownExportFormat = errors.New("unknown export format")
	ErrNoCollaborator      = errors.New("no collaborator configured for action")
)

// ActType is the kind of act document generated from tasks.
type ActType string

// Act types.
const (
	ActGPH          ActType = "gph"
	ActOIS          ActType = "ois"
	ActSelfEmployed ActType = "self_employed"
)

// ActTypes returns every act type in menu order.
func ActTypes() []ActType {
	return []ActType{ActGPH, ActOIS, ActSelfEmployed}
}

// ParseActType accepts "gph", "ois" and "self_employed" (or "self-employed"), in any case.
func ParseActType(s string) (ActType, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, t := range ActTypes() {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActType, s)
}

// Label returns the menu label of the act type.
func (a ActType) Label() string {
	switch a {
	case ActGPH:
		return "Акт ГПХ"
	case ActOIS:
		return "Акт с ОИС"
	case ActSelfEmployed:
		return "Акт самозанятого"
	}
	return string(a)
}

// ExportFormat is the file format of an export.
type ExportFormat string

// Export formats.
const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
	FormatCSV  ExportFormat = "csv"
)

// ExportFormats returns every export format.
func ExportFormats() []ExportFormat {
	return []ExportFormat{FormatJSON, FormatYAML, FormatCSV}
}

// ParseExportFormat accepts "json", "yaml"/"yml" and "csv".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, s)
}

// NewCommandID returns a fresh, time-ordered command id.
func NewCommandID() string {
	return ulid.Make().String()
}

// Target identifies the tasks a command applies to.
type Target struct {
	ID       string    `json:"id"        yaml:"id"`
	BatchID  int       `json:"batch_id"  yaml:"batch_id"`
	TaskIDs  []int     `json:"task_ids"  yaml:"task_ids"`
	IssuedAt time.Time `json:"issued_at" yaml:"issued_at"`
}

// NewTarget stamps a new command target with an id and the current time.
func NewTarget(batchID int, taskIDs []int) Target {
	return Target{
		ID:       NewCommandID(),
		BatchID:  batchID,
		TaskIDs:  taskIDs,
		IssuedAt: time.Now().UTC(),
	}
}

// Validate rejects a target with no tasks.
func (t Target) Validate() error {
	if len(t.TaskIDs) == 0 {
		return ErrEmptyTaskIDs
	}
	return nil
}

// CreateActCommand asks for an act of the given type covering the tasks.
type CreateActCommand struct {
	Target  `yaml:",inline"`
	ActType ActType `json:"act_type" yaml:"act_type"`
}

// Validate checks the tasks and the act type. The act type must be one of
// the ActType constants; use ParseActType for user input.
func (c CreateActCommand) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if !slices.Contains(ActTypes(), c.ActType) {
		return fmt.Errorf("%w: %q", ErrUnknownActType, string(c.ActType))
	}
	return nil
}

// NotifyCommand asks for the executors of the tasks to be notified.
type NotifyCommand struct {
	Target `yaml:",inline"`
}

// Validate checks the tasks.
func (c NotifyCommand) Validate() error {
	return c.Target.Validate()
}

// ExportCommand asks for the tasks to be exported in the given format.
type ExportCommand struct {
	Target `yaml:",inline"`
	Format ExportFormat `json:"format" yaml:"format"`
}

// Validate checks the tasks and the format. The format must be one of
// the ExportFormat constants; use ParseExportFormat for user input.
func (c ExportCommand) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if !slices.Contains(ExportFormats(), c.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownExportFormat, string(c.Format))
	}
	return nil
}
