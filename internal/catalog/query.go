package catalog

import (
	"fmt"
	"strings"

	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/pagination"
)

// ListQuery is the per-view state of the batch list page.
type ListQuery struct {
	// Search is the text typed into the batch name filter.
	Search string

	// Params holds the requested page, page size and sort.
	pagination.Params
}

// StageView is one stage of a batch prepared for rendering.
type StageView struct {
	Stage    domain.Stage         `json:"stage"    yaml:"stage"`
	Progress domain.StageProgress `json:"progress" yaml:"progress"`
	Percent  float64              `json:"percent"  yaml:"percent"`
	Complete bool                 `json:"complete" yaml:"complete"`
}

// Row is a batch with its stage progress precomputed.
type Row struct {
	Batch  domain.TaskBatch `json:"batch"  yaml:"batch"`
	Stages []StageView      `json:"stages" yaml:"stages"`
}

// NewRow builds the display row for a batch.
func NewRow(b domain.TaskBatch) Row {
	row := Row{Batch: b, Stages: make([]StageView, 0, len(domain.Stages()))}
	for _, stage := range domain.Stages() {
		p := b.Progress(stage)
		row.Stages = append(row.Stages, StageView{
			Stage:    stage,
			Progress: p,
			Percent:  domain.ProgressPercent(p),
			Complete: p.Complete(),
		})
	}
	return row
}

// ListPage is one rendered page of the batch list.
type ListPage struct {
	Rows   []Row             `json:"rows"   yaml:"rows"`
	Meta   pagination.Meta   `json:"meta"   yaml:"meta"`
	Window pagination.Window `json:"window" yaml:"window"`
}

// Query runs search, optional sort, page clamping and pagination in one call.
// A page number outside the result range is clamped to the nearest valid page.
func (c *Catalog) Query(q ListQuery) (ListPage, error) {
	if q.PageSize == 0 {
		q.PageSize = pagination.DefaultPageSize
	}
	if err := q.Validate(); err != nil {
		return ListPage{}, err
	}

	matches := c.Search(q.Search)
	if q.SortField != "" {
		sorter := pagination.NewBatchSorter()
		if !sorter.IsValidField(q.SortField) {
			return ListPage{}, fmt.Errorf("%w: %q (valid: %s)", pagination.ErrInvalidSortField,
				q.SortField, strings.Join(sorter.GetValidFields(), ", "))
		}
		matches = sorter.Sort(matches, q.SortField, q.SortOrder)
	}

	totalPages := pagination.TotalPages(len(matches), q.PageSize)
	page := pagination.ClampPage(q.Page, totalPages)
	items, _ := pagination.Paginate(matches, page, q.PageSize)

	rows := make([]Row, 0, len(items))
	for _, b := range items {
		rows = append(rows, NewRow(b))
	}

	return ListPage{
		Rows:   rows,
		Meta:   pagination.NewMeta(page, q.PageSize, len(matches)),
		Window: pagination.NewWindow(page, totalPages),
	}, nil
}
