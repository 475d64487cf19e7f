package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/taskbatch/internal/domain"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "valid default", params: NewParams()},
		{name: "page zero is allowed", params: Params{Page: 0, PageSize: 8}},
		{name: "negative page", params: Params{Page: -1, PageSize: 8}, wantErr: ErrInvalidPage},
		{name: "zero page size", params: Params{Page: 1, PageSize: 0}, wantErr: ErrInvalidPageSize},
		{name: "huge page size", params: Params{Page: 1, PageSize: 5000}, wantErr: ErrInvalidPageSize},
		{name: "bad order", params: Params{Page: 1, PageSize: 8, SortOrder: "up"}, wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortStr   string
		wantField string
		wantOrder string
		wantErr   bool
	}{
		{name: "empty", sortStr: "", wantField: DefaultSortField, wantOrder: DefaultSortOrder},
		{name: "field only", sortStr: "paid", wantField: "paid", wantOrder: "asc"},
		{name: "field and order asc", sortStr: "created:asc", wantField: "created", wantOrder: "asc"},
		{name: "field and order desc", sortStr: "created:DESC", wantField: "created", wantOrder: "desc"},
		{name: "invalid format", sortStr: "field:order:extra", wantErr: true},
		{name: "empty field", sortStr: ":asc", wantErr: true},
		{name: "invalid order", sortStr: "paid:invalid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order, err := ParseSort(tt.sortStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantField, field)
				assert.Equal(t, tt.wantOrder, order)
			}
		})
	}
}

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginate(t *testing.T) {
	items := seq(20)

	t.Run("first page", func(t *testing.T) {
		page, total := Paginate(items, 1, 8)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, page)
		assert.Equal(t, 3, total)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, total := Paginate(items, 3, 8)
		assert.Equal(t, []int{16, 17, 18, 19}, page)
		assert.Equal(t, 3, total)
	})

	t.Run("out of range is not clamped", func(t *testing.T) {
		page, total := Paginate(items, 4, 8)
		assert.Empty(t, page)
		assert.Equal(t, 3, total)

		page, _ = Paginate(items, 0, 8)
		assert.Empty(t, page)
	})

	t.Run("empty input", func(t *testing.T) {
		page, total := Paginate([]int{}, 1, 8)
		assert.Empty(t, page)
		assert.Zero(t, total)
	})

	t.Run("non-positive page size is a single page", func(t *testing.T) {
		page, total := Paginate(items, 1, 0)
		assert.Equal(t, items, page)
		assert.Equal(t, 1, total)
	})
}

func TestPaginate_Reconstructs(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 9, 25, 64} {
		for _, size := range []int{1, 3, 8, 10, 100} {
			items := seq(n)
			_, total := Paginate(items, 1, size)

			var rebuilt []int
			for p := 1; p <= total; p++ {
				page, _ := Paginate(items, p, size)
				assert.LessOrEqual(t, len(page), size)
				rebuilt = append(rebuilt, page...)
			}
			if n == 0 {
				assert.Empty(t, rebuilt)
				continue
			}
			assert.Equal(t, items, rebuilt, "n=%d size=%d", n, size)
		}
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-5, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 1, ClampPage(4, 0))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 8, 20)
	assert.Equal(t, Meta{
		CurrentPage: 2,
		PageSize:    8,
		TotalPages:  3,
		TotalItems:  20,
		HasPrevious: true,
		HasNext:     true,
	}, meta)

	meta = NewMeta(1, 8, 8)
	assert.False(t, meta.HasPrevious)
	assert.False(t, meta.HasNext)
}

func TestNewWindow(t *testing.T) {
	t.Run("few pages", func(t *testing.T) {
		w := NewWindow(2, 3)
		assert.Equal(t, []int{1, 2, 3}, w.Pages)
		assert.False(t, w.Ellipsis)
		assert.Zero(t, w.Last)
	})

	t.Run("many pages", func(t *testing.T) {
		w := NewWindow(1, 12)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, w.Pages)
		assert.True(t, w.Ellipsis)
		assert.Equal(t, 12, w.Last)
	})

	t.Run("no pages", func(t *testing.T) {
		w := NewWindow(1, 0)
		assert.Empty(t, w.Pages)
	})
}

func TestBatchSorter(t *testing.T) {
	sorter := NewBatchSorter()
	batches := []domain.TaskBatch{
		{ID: 374, Name: "Выплата аналитикам", TaskCount: 2, CreatedAt: domain.NewDate(2026, time.January, 26),
			Paid: domain.StageProgress{Current: 0, Total: 2}},
		{ID: 371, Name: "Акт ГПХ (3)", TaskCount: 1, CreatedAt: domain.NewDate(2026, time.January, 16),
			Paid: domain.StageProgress{Current: 1, Total: 1}},
		{ID: 365, Name: "акт с ОИС (1)", TaskCount: 1, CreatedAt: domain.NewDate(2025, time.December, 30),
			Paid: domain.StageProgress{Current: 1, Total: 1}},
	}

	t.Run("SortByIDAsc", func(t *testing.T) {
		sorted := sorter.Sort(batches, "id", "asc")
		assert.Equal(t, []int{365, 371, 374}, ids(sorted))
	})

	t.Run("SortByCreatedDesc", func(t *testing.T) {
		sorted := sorter.Sort(batches, "created", "desc")
		assert.Equal(t, []int{374, 371, 365}, ids(sorted))
	})

	t.Run("SortByNameIgnoresCase", func(t *testing.T) {
		sorted := sorter.Sort(batches, "name", "asc")
		assert.Equal(t, []int{371, 365, 374}, ids(sorted))
	})

	t.Run("SortByPaidIsStable", func(t *testing.T) {
		sorted := sorter.Sort(batches, "paid", "desc")
		assert.Equal(t, []int{371, 365, 374}, ids(sorted))
	})

	t.Run("DoesNotModifyInput", func(t *testing.T) {
		_ = sorter.Sort(batches, "id", "asc")
		assert.Equal(t, []int{374, 371, 365}, ids(batches))
	})

	t.Run("InvalidField", func(t *testing.T) {
		sorted := sorter.Sort(batches, "invalid", "asc")
		assert.Equal(t, batches, sorted)
	})

	t.Run("GetValidFields", func(t *testing.T) {
		fields := sorter.GetValidFields()
		assert.Contains(t, fields, "created")
		assert.Contains(t, fields, "paid")
		assert.IsIncreasing(t, fields)
	})
}

func ids(batches []domain.TaskBatch) []int {
	out := make([]int, len(batches))
	for i, b := range batches {
		out[i] = b.ID
	}
	return out
}
