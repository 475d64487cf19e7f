package actions

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/taskbatch/internal/domain"
)

func TestParseActType(t *testing.T) {
	tests := []struct {
		in      string
		want    ActType
		wantErr bool
	}{
		{in: "gph", want: ActGPH},
		{in: "OIS", want: ActOIS},
		{in: "self-employed", want: ActSelfEmployed},
		{in: " self_employed ", want: ActSelfEmployed},
		{in: "invoice", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseActType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownActType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActType_Label(t *testing.T) {
	assert.Equal(t, "Акт ГПХ", ActGPH.Label())
	assert.Equal(t, "Акт с ОИС", ActOIS.Label())
	assert.Equal(t, "Акт самозанятого", ActSelfEmployed.Label())
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseExportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseExportFormat("xlsx")
	require.ErrorIs(t, err, ErrUnknownExportFormat)
}

func TestCommands_Validate(t *testing.T) {
	target := NewTarget(372, []int{1, 2})
	assert.Len(t, target.ID, 26)
	assert.False(t, target.IssuedAt.IsZero())

	require.NoError(t, CreateActCommand{Target: target, ActType: ActOIS}.Validate())
	require.ErrorIs(t, CreateActCommand{Target: target, ActType: "bogus"}.Validate(), ErrUnknownActType)
	require.ErrorIs(t, NotifyCommand{Target: NewTarget(372, nil)}.Validate(), ErrEmptyTaskIDs)
	require.ErrorIs(t, ExportCommand{Target: target, Format: "pdf"}.Validate(), ErrUnknownExportFormat)
	require.NoError(t, ExportCommand{Target: target, Format: FormatJSON}.Validate())

	// Parse accepts loose spellings; commands only carry the constants.
	require.ErrorIs(t, CreateActCommand{Target: target, ActType: "GPH"}.Validate(), ErrUnknownActType)
	require.ErrorIs(t, CreateActCommand{Target: target, ActType: "self-employed"}.Validate(), ErrUnknownActType)
	require.ErrorIs(t, ExportCommand{Target: target, Format: "YAML"}.Validate(), ErrUnknownExportFormat)
	require.ErrorIs(t, ExportCommand{Target: target, Format: "yml"}.Validate(), ErrUnknownExportFormat)
	for _, f := range ExportFormats() {
		require.NoError(t, ExportCommand{Target: target, Format: f}.Validate())
	}
}

func TestCommand_YAMLInlinesTarget(t *testing.T) {
	cmd := CreateActCommand{Target: Target{ID: "c1", BatchID: 372, TaskIDs: []int{4}}, ActType: ActGPH}
	out, err := yaml.Marshal(cmd)
	require.NoError(t, err)
	assert.Contains(t, string(out), "batch_id: 372")
	assert.Contains(t, string(out), "act_type: gph")
}

type recordingCollaborator struct {
	mu      sync.Mutex
	acts    []CreateActCommand
	notify  []NotifyCommand
	exports []ExportCommand
	err     error
}

func (r *recordingCollaborator) CreateAct(_ context.Context, cmd CreateActCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acts = append(r.acts, cmd)
	return r.err
}

func (r *recordingCollaborator) SendNotification(_ context.Context, cmd NotifyCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notify = append(r.notify, cmd)
	return r.err
}

func (r *recordingCollaborator) Export(_ context.Context, cmd ExportCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports = append(r.exports, cmd)
	return r.err
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	target := NewTarget(372, []int{1})

	t.Run("RoutesToCollaborators", func(t *testing.T) {
		rec := &recordingCollaborator{}
		r := Router{Acts: rec, Notifications: rec, Exports: rec}

		require.NoError(t, r.CreateAct(ctx, CreateActCommand{Target: target, ActType: ActGPH}))
		require.NoError(t, r.SendNotification(ctx, NotifyCommand{Target: target}))
		require.NoError(t, r.Export(ctx, ExportCommand{Target: target, Format: FormatCSV}))

		assert.Len(t, rec.acts, 1)
		assert.Len(t, rec.notify, 1)
		assert.Len(t, rec.exports, 1)
	})

	t.Run("MissingCollaborator", func(t *testing.T) {
		r := Router{}
		require.ErrorIs(t, r.CreateAct(ctx, CreateActCommand{Target: target}), ErrNoCollaborator)
		require.ErrorIs(t, r.SendNotification(ctx, NotifyCommand{Target: target}), ErrNoCollaborator)
		require.ErrorIs(t, r.Export(ctx, ExportCommand{Target: target}), ErrNoCollaborator)
	})

	t.Run("PropagatesError", func(t *testing.T) {
		boom := errors.New("boom")
		r := Router{Acts: &recordingCollaborator{err: boom}}
		require.ErrorIs(t, r.CreateAct(ctx, CreateActCommand{Target: target, ActType: ActGPH}), boom)
	})
}

func TestLogDispatcher(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())
	target := NewTarget(372, []int{1, 3})

	var d LogDispatcher
	require.NoError(t, d.CreateAct(ctx, CreateActCommand{Target: target, ActType: ActSelfEmployed}))
	require.NoError(t, d.SendNotification(ctx, NotifyCommand{Target: target}))
	require.NoError(t, d.Export(ctx, ExportCommand{Target: target, Format: FormatYAML}))

	out := buf.String()
	assert.Contains(t, out, `"operation":"create_act"`)
	assert.Contains(t, out, `"act_type":"self_employed"`)
	assert.Contains(t, out, `"operation":"send_notification"`)
	assert.Contains(t, out, `"task_ids":[1,3]`)
	assert.Contains(t, out, `"format":"yaml"`)

	require.ErrorIs(t, d.Export(ctx, ExportCommand{Target: NewTarget(372, nil), Format: FormatYAML}), ErrEmptyTaskIDs)
}

func TestChunkedNotifier(t *testing.T) {
	ids := make([]int, 23)
	for i := range ids {
		ids[i] = i + 1
	}

	var (
		mu   sync.Mutex
		sent [][]int
	)
	send := func(_ context.Context, batchID int, taskIDs []int) error {
		assert.Equal(t, 372, batchID)
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, slices.Clone(taskIDs))
		return nil
	}

	n, err := NewChunkedNotifier(send, 10, 2)
	require.NoError(t, err)
	require.NoError(t, n.SendNotification(context.Background(), NotifyCommand{Target: NewTarget(372, ids)}))

	require.Len(t, sent, 3)
	var all []int
	for _, chunk := range sent {
		assert.LessOrEqual(t, len(chunk), 10)
		all = append(all, chunk...)
	}
	slices.Sort(all)
	assert.Equal(t, ids, all)

	t.Run("SendError", func(t *testing.T) {
		boom := errors.New("gateway down")
		failing, err := NewChunkedNotifier(func(context.Context, int, []int) error { return boom }, 5, 1)
		require.NoError(t, err)
		err = failing.SendNotification(context.Background(), NotifyCommand{Target: NewTarget(9, ids)})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "notify batch 9")
	})

	t.Run("InvalidConstruction", func(t *testing.T) {
		_, err := NewChunkedNotifier(nil, 10, 1)
		require.ErrorIs(t, err, ErrNilCallback)
		_, err = NewChunkedNotifier(LogSender, 0, 1)
		require.ErrorIs(t, err, ErrInvalidChunkSize)
	})

	t.Run("SequentialWithProgress", func(t *testing.T) {
		var (
			order   []int
			reports []Progress
		)
		ordered, err := NewChunkedNotifier(func(_ context.Context, _ int, taskIDs []int) error {
			order = append(order, taskIDs...)
			return nil
		}, 10, 1)
		require.NoError(t, err)
		ordered.WithProgress(func(p Progress) { reports = append(reports, p) })

		require.NoError(t, ordered.SendNotification(context.Background(), NotifyCommand{Target: NewTarget(372, ids)}))
		assert.Equal(t, ids, order)
		require.Len(t, reports, 3)
		assert.Equal(t, 1, reports[0].ProcessedChunks)
		assert.False(t, reports[0].IsComplete())
		last := reports[2]
		assert.True(t, last.IsComplete())
		assert.Equal(t, 3, last.TotalChunks)
		assert.InDelta(t, 100.0, last.PercentComplete(), 1e-9)
	})

	t.Run("LogSender", func(t *testing.T) {
		n, err := NewChunkedNotifier(LogSender, 50, 1)
		require.NoError(t, err)
		require.NoError(t, n.SendNotification(context.Background(), NotifyCommand{Target: NewTarget(1, []int{1})}))
	})
}

type staticLookup map[int][]domain.Task

func (s staticLookup) Tasks(batchID int) ([]domain.Task, error) {
	tasks, ok := s[batchID]
	if !ok {
		return nil, errors.New("no such batch")
	}
	return tasks, nil
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{
			ID: 1, Title: "Анализ конкурентов", ExecutorName: "Иванов И.И.",
			Status: domain.StatusClosed, Amount: decimal.NewFromInt(50000),
			Deadline: domain.NewDate(2026, 1, 25),
		},
		{
			ID: 2, Title: "Разработка стратегии", ExecutorName: "Петрова А.С.",
			Status: domain.StatusInProgress, Amount: decimal.NewFromInt(75000),
			Deadline: domain.NewDate(2026, 1, 30),
		},
		{
			ID: 3, Title: "Аудит системы", ExecutorName: "Сидоров П.П.",
			Status: domain.StatusAccepted, Amount: decimal.NewFromInt(60000),
			Deadline: domain.NewDate(2026, 1, 28),
		},
	}
}

func TestFileExporter(t *testing.T) {
	lookup := staticLookup{372: sampleTasks()}

	t.Run("CSV", func(t *testing.T) {
		e := FileExporter{Dir: t.TempDir(), Lookup: lookup}
		cmd := ExportCommand{Target: NewTarget(372, []int{3, 1}), Format: FormatCSV}

		path, err := e.ExportFile(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, "batch-372-"+cmd.ID+".csv", filepath.Base(path))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)

		require.Len(t, records, 3)
		assert.Equal(t, csvHeader, records[0])
		assert.Equal(t, []string{"3", "Аудит системы", "Сидоров П.П.", "accepted", "60000", "28.01.2026"}, records[1])
		assert.Equal(t, "1", records[2][0])
	})

	t.Run("JSON", func(t *testing.T) {
		dir := t.TempDir()
		e := FileExporter{Dir: dir, Lookup: lookup}
		cmd := ExportCommand{Target: NewTarget(372, []int{2}), Format: FormatJSON}
		require.NoError(t, e.Export(context.Background(), cmd))

		data, err := os.ReadFile(filepath.Join(dir, "batch-372-"+cmd.ID+".json"))
		require.NoError(t, err)
		var got []domain.Task
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Разработка стратегии", got[0].Title)
		assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(75000)))
	})

	t.Run("UnknownTask", func(t *testing.T) {
		e := FileExporter{Dir: t.TempDir(), Lookup: lookup}
		err := e.Export(context.Background(), ExportCommand{Target: NewTarget(372, []int{99}), Format: FormatYAML})
		require.ErrorIs(t, err, ErrTaskNotInBatch)
	})

	t.Run("NonCanonicalFormatWritesNothing", func(t *testing.T) {
		dir := t.TempDir()
		e := FileExporter{Dir: dir, Lookup: lookup}
		err := e.Export(context.Background(), ExportCommand{Target: NewTarget(372, []int{1}), Format: "YAML"})
		require.ErrorIs(t, err, ErrUnknownExportFormat)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("FailedWriteRemovesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch-372.xml")
		err := writeExportFile(path, "xml", sampleTasks())
		require.ErrorIs(t, err, ErrUnknownExportFormat)
		assert.NoFileExists(t, path)
	})

	t.Run("UnknownBatch", func(t *testing.T) {
		e := FileExporter{Dir: t.TempDir(), Lookup: lookup}
		err := e.Export(context.Background(), ExportCommand{Target: NewTarget(1, []int{1}), Format: FormatYAML})
		require.Error(t, err)
	})
}

func TestWriteTasks_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, FormatYAML, sampleTasks()[:1]))
	assert.Contains(t, buf.String(), "title: Анализ конкурентов")
	assert.Contains(t, buf.String(), "deadline: 25.01.2026")

	require.ErrorIs(t, WriteTasks(&buf, "xml", nil), ErrUnknownExportFormat)
}
