package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/taskbatch/internal/catalog"
	"github.com/rshade/taskbatch/internal/cli"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/pagination"
)

const customFeed = `schema_version: "1.2.0"
batches:
  - id: 10
    name: Ночная смена
    task_count: 2
    created_at: 2026-02-01
    accepted: {current: 2, total: 2}
    signed: {current: 1, total: 2}
    paid: {current: 0, total: 2}
tasks:
  10:
    - id: 1
      title: Приемка склада
      executor_name: Орлов О.О.
      status: accepted
      amount: 1500.50
      deadline: 03.02.2026
`

func TestBatchesList(t *testing.T) {
	isolate(t)
	out, err := execute(t, "batches", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ACCEPTED")
	assert.Contains(t, out, "376")
	assert.Contains(t, out, "Выплата аналитикам")
	assert.Contains(t, out, "0 из 2 (0%)")
	assert.Contains(t, out, "Page 1 of 1, 8 пачек заданий")
}

func TestBatchesListSearchJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "batches", "list", "--search", "ВЫПЛАТА", "--output", "json")
	require.NoError(t, err)

	var page catalog.ListPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 4, page.Meta.TotalItems)
	for _, row := range page.Rows {
		assert.Equal(t, "Выплата аналитикам", row.Batch.Name)
	}
}

func TestBatchesListPageClamped(t *testing.T) {
	isolate(t)
	out, err := execute(t, "batches", "list", "--page", "9", "--page-size", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 3 of 3")
	assert.Contains(t, out, "365")
}

func TestBatchesListSortYAML(t *testing.T) {
	isolate(t)
	out, err := execute(t, "batches", "list", "--sort", "tasks:desc", "--output", "yaml")
	require.NoError(t, err)

	var page catalog.ListPage
	require.NoError(t, yaml.Unmarshal([]byte(out), &page))
	require.NotEmpty(t, page.Rows)
	assert.Equal(t, 374, page.Rows[0].Batch.ID)
}

func TestBatchesListErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown sort field", args: []string{"--sort", "color"}, wantErr: pagination.ErrInvalidSortField},
		{name: "bad sort order", args: []string{"--sort", "name:up"}, wantErr: pagination.ErrInvalidSortOrder},
		{name: "bad page size", args: []string{"--page-size=-1"}, wantErr: pagination.ErrInvalidPageSize},
		{name: "unknown output", args: []string{"--output", "xml"}, wantErr: cli.ErrUnknownOutputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := execute(t, append([]string{"batches", "list"}, tt.args...)...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBatchesListCustomFeed(t *testing.T) {
	home := isolate(t)
	path := writeFeed(t, home, "feed.yaml", customFeed)

	out, err := execute(t, "--feed", path, "batches", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ночная смена")
	assert.Contains(t, out, "01.02.2026")
	assert.Contains(t, out, "1 пачка заданий")
}

func TestBatchesListRejectsBrokenFeed(t *testing.T) {
	home := isolate(t)
	path := writeFeed(t, home, "broken.yaml", `schema_version: "1.0.0"
batches:
  - id: 1
    name: Сломанная
    task_count: 1
    created_at: 01.01.2026
    accepted: {current: 3, total: 1}
    signed: {current: 0, total: 1}
    paid: {current: 0, total: 1}
`)

	_, err := execute(t, "--feed", path, "batches", "list")
	require.ErrorIs(t, err, domain.ErrStageOverflow)
}

func TestBatchesShow(t *testing.T) {
	isolate(t)
	out, err := execute(t, "batches", "show", "376")
	require.NoError(t, err)

	assert.Contains(t, out, "Batch #376: Акт с ОИС")
	assert.Contains(t, out, "Created: 26.01.2026")
	assert.Contains(t, out, "Иванов И.И.")
	assert.Contains(t, out, "Акт сформирован")
	assert.Contains(t, out, "Tasks: 4")
}

func TestBatchesShowJSON(t *testing.T) {
	home := isolate(t)
	path := writeFeed(t, home, "feed.yaml", customFeed)

	out, err := execute(t, "--feed", path, "batches", "show", "10", "--output", "json")
	require.NoError(t, err)

	var view struct {
		Summary struct {
			Tasks       int    `json:"tasks"`
			Accepted    int    `json:"accepted"`
			TotalAmount string `json:"total_amount"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.Summary.Tasks)
	assert.Equal(t, 1, view.Summary.Accepted)
	assert.Equal(t, "1500.5", view.Summary.TotalAmount)
}

func TestBatchesShowErrors(t *testing.T) {
	isolate(t)

	_, err := execute(t, "batches", "show", "999")
	require.ErrorIs(t, err, catalog.ErrBatchNotFound)

	_, err = execute(t, "batches", "show", "abc")
	require.ErrorIs(t, err, domain.ErrInvalidBatchID)

	_, err = execute(t, "batches", "show")
	require.Error(t, err)
}

func TestBatchesBrowseNeedsTerminal(t *testing.T) {
	isolate(t)
	_, err := execute(t, "batches", "browse")
	require.ErrorIs(t, err, cli.ErrNotATerminal)
}
