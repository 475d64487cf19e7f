package actions

import (
	"context"
	"fmt"

	"github.com/rshade/taskbatch/internal/logging"
)

// ActCreator generates acts for tasks.
type ActCreator interface {
	CreateAct(ctx context.Context, cmd CreateActCommand) error
}

// NotificationSender notifies the executors of tasks.
type NotificationSender interface {
	SendNotification(ctx context.Context, cmd NotifyCommand) error
}

// Exporter exports tasks.
type Exporter interface {
	Export(ctx context.Context, cmd ExportCommand) error
}

// Router sends each command to the collaborator responsible for it.
// A nil collaborator makes its action fail with ErrNoCollaborator.
type Router struct {
	Acts          ActCreator
	Notifications NotificationSender
	Exports       Exporter
}

// CreateAct implements ActCreator.
func (r Router) CreateAct(ctx context.Context, cmd CreateActCommand) error {
	if r.Acts == nil {
		return fmt.Errorf("%w: create act", ErrNoCollaborator)
	}
	return r.Acts.CreateAct(ctx, cmd)
}

// SendNotification implements NotificationSender.
func (r Router) SendNotification(ctx context.Context, cmd NotifyCommand) error {
	if r.Notifications == nil {
		return fmt.Errorf("%w: send notification", ErrNoCollaborator)
	}
	return r.Notifications.SendNotification(ctx, cmd)
}

// Export implements Exporter.
func (r Router) Export(ctx context.Context, cmd ExportCommand) error {
	if r.Exports == nil {
		return fmt.Errorf("%w: export", ErrNoCollaborator)
	}
	return r.Exports.Export(ctx, cmd)
}

// LogDispatcher records commands in the context logger and performs nothing.
// It stands in for the act, messaging and export services when none are wired.
type LogDispatcher struct{}

// CreateAct implements ActCreator.
func (LogDispatcher) CreateAct(ctx context.Context, cmd CreateActCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).
		Str("component", "actions").
		Str("operation", "create_act").
		Str("command_id", cmd.ID).
		Int("batch_id", cmd.BatchID).
		Ints("task_ids", cmd.TaskIDs).
		Str("act_type", string(cmd.ActType)).
		Msg("act requested")
	return nil
}

// SendNotification implements NotificationSender.
func (LogDispatcher) SendNotification(ctx context.Context, cmd NotifyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).
		Str("component", "actions").
		Str("operation", "send_notification").
		Str("command_id", cmd.ID).
		Int("batch_id", cmd.BatchID).
		Ints("task_ids", cmd.TaskIDs).
		Msg("notification requested")
	return nil
}

// Export implements Exporter.
func (LogDispatcher) Export(ctx context.Context, cmd ExportCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).
		Str("component", "actions").
		Str("operation", "export").
		Str("command_id", cmd.ID).
		Int("batch_id", cmd.BatchID).
		Ints("task_ids", cmd.TaskIDs).
		Str("format", string(cmd.Format)).
		Msg("export requested")
	return nil
}
