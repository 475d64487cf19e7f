package detail

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rshade/taskbatch/internal/actions"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/logging"
)

// Dispatcher receives the commands built from the selection.
type Dispatcher interface {
	actions.ActCreator
	actions.NotificationSender
	actions.Exporter
}

// Option configures a Detail.
type Option func(*Detail)

// WithPolicy sets the transition policy used by Advance.
// The default is domain.LinearPolicy.
func WithPolicy(p domain.TransitionPolicy) Option {
	return func(d *Detail) {
		if p != nil {
			d.policy = p
		}
	}
}

// WithDispatcher sets the collaborator bulk actions are handed to.
func WithDispatcher(dispatcher Dispatcher) Option {
	return func(d *Detail) {
		d.dispatcher = dispatcher
	}
}

// Detail is the state of one batch view.
type Detail struct {
	batch      domain.TaskBatch
	tasks      []domain.Task
	index      map[int]int
	selected   map[int]struct{}
	policy     domain.TransitionPolicy
	dispatcher Dispatcher
}

// New validates tasks and returns a view of batch with an empty selection.
func New(batch domain.TaskBatch, tasks []domain.Task, opts ...Option) (*Detail, error) {
	d := &Detail{
		batch:    batch,
		selected: make(map[int]struct{}),
		policy:   domain.LinearPolicy,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.load(tasks); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Detail) load(tasks []domain.Task) error {
	index := make(map[int]int, len(tasks))
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("batch %d: %w", d.batch.ID, err)
		}
		if _, dup := index[t.ID]; dup {
			return fmt.Errorf("batch %d: %w: %d", d.batch.ID, ErrDuplicateTaskID, t.ID)
		}
		index[t.ID] = i
	}
	d.tasks = slices.Clone(tasks)
	d.index = index
	return nil
}

// Batch returns the batch being viewed.
func (d *Detail) Batch() domain.TaskBatch {
	return d.batch
}

// Tasks returns the tasks in display order.
func (d *Detail) Tasks() []domain.Task {
	return slices.Clone(d.tasks)
}

// Task returns the task with the given id.
func (d *Detail) Task(id int) (domain.Task, error) {
	i, ok := d.index[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %d", ErrInvalidTaskReference, id)
	}
	return d.tasks[i], nil
}

// Reload replaces the task list. The selection is cleared.
// On error the view is left unchanged.
func (d *Detail) Reload(tasks []domain.Task) error {
	if err := d.load(tasks); err != nil {
		return err
	}
	clear(d.selected)
	return nil
}

// Selection returns the current selection.
func (d *Detail) Selection() SelectionSet {
	return snapshot(d.selected)
}

// IsSelected reports whether the task is selected.
func (d *Detail) IsSelected(id int) bool {
	_, ok := d.selected[id]
	return ok
}

// AllSelected reports whether every task is selected. An empty batch is
// never all selected.
func (d *Detail) AllSelected() bool {
	return len(d.tasks) > 0 && len(d.selected) == len(d.tasks)
}

// ToggleTask adds id to the selection or removes it if already selected.
// An id that is not in the batch leaves the selection untouched.
func (d *Detail) ToggleTask(id int) (SelectionSet, error) {
	if _, ok := d.index[id]; !ok {
		return d.Selection(), fmt.Errorf("%w: %d", ErrInvalidTaskReference, id)
	}
	if _, ok := d.selected[id]; ok {
		delete(d.selected, id)
	} else {
		d.selected[id] = struct{}{}
	}
	return d.Selection(), nil
}

// ToggleSelectAll clears the selection when every task is selected and
// selects every task otherwise.
func (d *Detail) ToggleSelectAll() SelectionSet {
	if d.AllSelected() {
		clear(d.selected)
		return d.Selection()
	}
	for _, t := range d.tasks {
		d.selected[t.ID] = struct{}{}
	}
	return d.Selection()
}

// ClearSelection empties the selection.
func (d *Detail) ClearSelection() SelectionSet {
	clear(d.selected)
	return d.Selection()
}

// ActionsEnabled reports whether bulk actions can be offered.
func (d *Detail) ActionsEnabled() bool {
	return len(d.selected) > 0
}

// Advance moves a task to status to if the transition policy allows it.
func (d *Detail) Advance(taskID int, to domain.Status) (domain.Task, error) {
	i, ok := d.index[taskID]
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %d", ErrInvalidTaskReference, taskID)
	}
	if err := domain.CheckTransition(d.policy, d.tasks[i].Status, to); err != nil {
		return domain.Task{}, fmt.Errorf("task %d: %w", taskID, err)
	}
	d.tasks[i].Status = to
	return d.tasks[i], nil
}

// Row is a task prepared for rendering.
type Row struct {
	Task     domain.Task  `json:"task"     yaml:"task"`
	Label    domain.Label `json:"label"    yaml:"label"`
	Selected bool         `json:"selected" yaml:"selected"`
}

// Rows returns the tasks with their status labels and selection marks.
func (d *Detail) Rows() []Row {
	rows := make([]Row, 0, len(d.tasks))
	for _, t := range d.tasks {
		// Tasks are validated on load, so the label always resolves.
		label, _ := domain.StatusLabel(t.Status)
		rows = append(rows, Row{Task: t, Label: label, Selected: d.IsSelected(t.ID)})
	}
	return rows
}

// Summary aggregates the tasks of the batch.
type Summary struct {
	Tasks          int             `json:"tasks"           yaml:"tasks"`
	Accepted       int             `json:"accepted"        yaml:"accepted"`
	InProgress     int             `json:"in_progress"     yaml:"in_progress"`
	Closed         int             `json:"closed"          yaml:"closed"`
	ActCreated     int             `json:"act_created"     yaml:"act_created"`
	Selected       int             `json:"selected"        yaml:"selected"`
	TotalAmount    decimal.Decimal `json:"total_amount"    yaml:"total_amount"`
	SelectedAmount decimal.Decimal `json:"selected_amount" yaml:"selected_amount"`
}

// Count returns the number of tasks in status s.
func (s Summary) Count(status domain.Status) int {
	switch status {
	case domain.StatusAccepted:
		return s.Accepted
	case domain.StatusInProgress:
		return s.InProgress
	case domain.StatusClosed:
		return s.Closed
	case domain.StatusActCreated:
		return s.ActCreated
	}
	return 0
}

// Summary counts tasks per status and totals their amounts.
func (d *Detail) Summary() Summary {
	s := Summary{
		Tasks:          len(d.tasks),
		Selected:       len(d.selected),
		TotalAmount:    decimal.Zero,
		SelectedAmount: decimal.Zero,
	}
	for _, t := range d.tasks {
		switch t.Status {
		case domain.StatusAccepted:
			s.Accepted++
		case domain.StatusInProgress:
			s.InProgress++
		case domain.StatusClosed:
			s.Closed++
		case domain.StatusActCreated:
			s.ActCreated++
		}
		s.TotalAmount = s.TotalAmount.Add(t.Amount)
		if d.IsSelected(t.ID) {
			s.SelectedAmount = s.SelectedAmount.Add(t.Amount)
		}
	}
	return s
}

// target builds the command target from the selection.
func (d *Detail) target() (actions.Target, error) {
	if len(d.selected) == 0 {
		return actions.Target{}, ErrEmptySelection
	}
	if d.dispatcher == nil {
		return actions.Target{}, ErrNoDispatcher
	}
	return actions.NewTarget(d.batch.ID, d.Selection().IDs()), nil
}

// CreateAct dispatches an act of type actType for the selected tasks.
// The selection is cleared once the dispatcher accepts the command.
func (d *Detail) CreateAct(ctx context.Context, actType actions.ActType) (actions.CreateActCommand, error) {
	target, err := d.target()
	if err != nil {
		return actions.CreateActCommand{}, err
	}
	cmd := actions.CreateActCommand{Target: target, ActType: actType}
	if err = cmd.Validate(); err != nil {
		return actions.CreateActCommand{}, err
	}
	if err = d.dispatcher.CreateAct(ctx, cmd); err != nil {
		return cmd, d.dispatchFailed(ctx, "create_act", target, err)
	}
	d.dispatched(ctx, "create_act", target)
	return cmd, nil
}

// SendNotification dispatches a notification for the selected tasks.
func (d *Detail) SendNotification(ctx context.Context) (actions.NotifyCommand, error) {
	target, err := d.target()
	if err != nil {
		return actions.NotifyCommand{}, err
	}
	cmd := actions.NotifyCommand{Target: target}
	if err = d.dispatcher.SendNotification(ctx, cmd); err != nil {
		return cmd, d.dispatchFailed(ctx, "send_notification", target, err)
	}
	d.dispatched(ctx, "send_notification", target)
	return cmd, nil
}

// Export dispatches an export of the selected tasks in format.
func (d *Detail) Export(ctx context.Context, format actions.ExportFormat) (actions.ExportCommand, error) {
	target, err := d.target()
	if err != nil {
		return actions.ExportCommand{}, err
	}
	cmd := actions.ExportCommand{Target: target, Format: format}
	if err = cmd.Validate(); err != nil {
		return actions.ExportCommand{}, err
	}
	if err = d.dispatcher.Export(ctx, cmd); err != nil {
		return cmd, d.dispatchFailed(ctx, "export", target, err)
	}
	d.dispatched(ctx, "export", target)
	return cmd, nil
}

func (d *Detail) dispatched(ctx context.Context, operation string, target actions.Target) {
	clear(d.selected)

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "detail").
		Str("operation", operation).
		Str("command_id", target.ID).
		Int("batch_id", target.BatchID).
		Int("tasks", len(target.TaskIDs)).
		Msg("bulk action dispatched")
}

// dispatchFailed keeps the selection so the user can retry.
func (d *Detail) dispatchFailed(ctx context.Context, operation string, target actions.Target, err error) error {
	log := logging.FromContext(ctx)
	log.Warn().Ctx(ctx).
		Str("component", "detail").
		Str("operation", operation).
		Str("command_id", target.ID).
		Int("batch_id", target.BatchID).
		Err(err).
		Msg("bulk action failed")
	return fmt.Errorf("%s for batch %d: %w", operation, target.BatchID, err)
}
