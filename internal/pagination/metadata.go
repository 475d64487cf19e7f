package pagination

// maxWindowLinks is the number of leading page links the pager shows before
// collapsing the rest into an ellipsis and a link to the last page.
const maxWindowLinks = 5

// Meta contains metadata about a paginated result.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates metadata for an already clamped page.
func NewMeta(page, pageSize, totalItems int) Meta {
	totalPages := TotalPages(totalItems, pageSize)
	return Meta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: page > MinPage,
		HasNext:     page < totalPages,
	}
}

// Window describes the pager links for a page.
type Window struct {
	// Pages are the numbered links shown, starting at 1.
	Pages []int `json:"pages" yaml:"pages"`

	// Ellipsis is true when pages between the window and Last are hidden.
	Ellipsis bool `json:"ellipsis" yaml:"ellipsis"`

	// Last is the trailing link to the final page, or 0 when it is already in Pages.
	Last int `json:"last,omitempty" yaml:"last,omitempty"`

	// Current is the active page.
	Current int `json:"current" yaml:"current"`
}

// NewWindow builds the pager for the current page: the first five pages,
// then an ellipsis and the last page when there are more than five.
func NewWindow(current, totalPages int) Window {
	shown := min(maxWindowLinks, totalPages)
	w := Window{Pages: make([]int, 0, shown), Current: current}
	for i := 1; i <= shown; i++ {
		w.Pages = append(w.Pages, i)
	}
	if totalPages > maxWindowLinks {
		w.Ellipsis = true
		w.Last = totalPages
	}
	return w
}
