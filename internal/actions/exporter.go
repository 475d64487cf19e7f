package actions

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/logging"
)

// ErrTaskNotInBatch indicates an export command naming a task the batch does not have.
var ErrTaskNotInBatch = errors.New("task not in batch")

// TaskLookup returns the tasks of a batch.
type TaskLookup interface {
	Tasks(batchID int) ([]domain.Task, error)
}

// FileExporter writes the selected tasks of a batch into Dir.
type FileExporter struct {
	Dir    string
	Lookup TaskLookup
}

// Export implements Exporter.
func (e FileExporter) Export(ctx context.Context, cmd ExportCommand) error {
	_, err := e.ExportFile(ctx, cmd)
	return err
}

// ExportFile writes the export and returns the path of the written file.
func (e FileExporter) ExportFile(ctx context.Context, cmd ExportCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	tasks, err := e.Lookup.Tasks(cmd.BatchID)
	if err != nil {
		return "", err
	}
	selected, err := pickTasks(tasks, cmd.TaskIDs)
	if err != nil {
		return "", fmt.Errorf("export batch %d: %w", cmd.BatchID, err)
	}

	if err = os.MkdirAll(e.Dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := ExportPath(e.Dir, cmd)
	if err = writeExportFile(path, cmd.Format, selected); err != nil {
		return "", err
	}

	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).
		Str("component", "actions").
		Str("operation", "export").
		Str("command_id", cmd.ID).
		Int("batch_id", cmd.BatchID).
		Int("tasks", len(selected)).
		Str("path", path).
		Msg("tasks exported")
	return path, nil
}

// writeExportFile creates path and writes tasks into it. A file that
// could not be written completely is removed.
func writeExportFile(path string, format ExportFormat, tasks []domain.Task) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	err = WriteTasks(f, format, tasks)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// ExportPath returns the file an export command is written to inside dir.
func ExportPath(dir string, cmd ExportCommand) string {
	return filepath.Join(dir, fmt.Sprintf("batch-%d-%s.%s", cmd.BatchID, cmd.ID, cmd.Format))
}

// pickTasks returns the tasks with the given ids, in the order of ids.
func pickTasks(tasks []domain.Task, ids []int) ([]domain.Task, error) {
	byID := make(map[int]domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	out := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrTaskNotInBatch, id)
		}
		out = append(out, t)
	}
	return out, nil
}

// csvHeader is the header row of CSV exports.
//
//nolint:gochecknoglobals // Fixed column layout.
var csvHeader = []string{"id", "title", "executor", "status", "amount", "deadline"}

// WriteTasks encodes tasks to w in the given format.
func WriteTasks(w io.Writer, format ExportFormat, tasks []domain.Task) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, t := range tasks {
			row := []string{
				strconv.Itoa(t.ID),
				t.Title,
				t.ExecutorName,
				string(t.Status),
				t.Amount.String(),
				t.Deadline.String(),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
}
