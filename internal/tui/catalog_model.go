package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/taskbatch/internal/catalog"
	"github.com/rshade/taskbatch/internal/detail"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/format"
	"github.com/rshade/taskbatch/internal/pagination"
	listview "github.com/rshade/taskbatch/internal/tui/list"
)

const (
	// catalogChromeHeight is the number of lines used by the header, filter and pager.
	catalogChromeHeight = 8

	// Column widths of a batch row.
	colWidthID   = 6
	colWidthName = 34
	colWidthDate = 10
	colWidthTask = 5

	// stageBarWidth is the width of one stage progress bar.
	stageBarWidth = 8

	truncateSuffix = "…"
)

// sortOption is one entry of the sort cycle bound to "s".
type sortOption struct {
	field string
	order string
	title string
}

// sortCycle starts with the canonical order (newest first).
//
//nolint:gochecknoglobals // Fixed cycle of sort options.
var sortCycle = []sortOption{
	{field: "", order: "", title: "по дате создания"},
	{field: "name", order: pagination.SortOrderAsc, title: "по названию"},
	{field: "tasks", order: pagination.SortOrderDesc, title: "по числу заданий"},
	{field: "paid", order: pagination.SortOrderAsc, title: "по оплате"},
	{field: "id", order: pagination.SortOrderAsc, title: "по номеру"},
}

// CatalogFetcher loads the catalog. It should honour ctx cancellation.
type CatalogFetcher func(ctx context.Context) (*catalog.Catalog, error)

// DetailOpener builds the detail view state for a batch.
type DetailOpener func(batch domain.TaskBatch) (*detail.Detail, error)

type catalogLoadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

// backToListMsg is sent by the detail view when the user leaves it.
type backToListMsg struct{}

// CatalogModel is the Bubble Tea model for the batch list.
type CatalogModel struct {
	ctx   context.Context
	state ViewState

	catalog *catalog.Catalog
	query   catalog.ListQuery
	page    catalog.ListPage
	sortIdx int

	list       *listview.Model[catalog.Row]
	textInput  textinput.Model
	showFilter bool
	bar        progress.Model

	openDetail DetailOpener
	detail     *DetailModel

	width  int
	height int

	loading  *LoadingState
	fetchCmd tea.Cmd

	err error
}

// NewCatalogModel creates a model showing c. open may be nil, in which case
// enter does nothing.
func NewCatalogModel(ctx context.Context, c *catalog.Catalog, pageSize int, open DetailOpener) *CatalogModel {
	m := newCatalogModel(ctx, pageSize, open)
	m.catalog = c
	m.state = ViewStateList
	m.refresh()
	return m
}

// NewCatalogModelWithLoading creates a model that starts in the loading state
// and calls fetch from Init.
func NewCatalogModelWithLoading(
	ctx context.Context,
	fetch CatalogFetcher,
	pageSize int,
	open DetailOpener,
) *CatalogModel {
	m := newCatalogModel(ctx, pageSize, open)
	m.state = ViewStateLoading
	m.loading = NewLoadingState()
	m.fetchCmd = func() tea.Msg {
		c, err := fetch(ctx)
		return catalogLoadedMsg{catalog: c, err: err}
	}
	return m
}

func newCatalogModel(ctx context.Context, pageSize int, open DetailOpener) *CatalogModel {
	params := pagination.NewParams()
	if pageSize > 0 {
		params.PageSize = pageSize
	}
	m := &CatalogModel{
		ctx:        ctx,
		query:      catalog.ListQuery{Params: params},
		textInput:  newSearchInput(),
		bar:        progress.New(progress.WithWidth(stageBarWidth), progress.WithoutPercentage()),
		openDetail: open,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.list = listview.New[catalog.Row](nil, m.listHeight(), m.renderRow)
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Поиск по названию..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// State returns the current view state.
func (m *CatalogModel) State() ViewState {
	return m.state
}

// Page returns the page currently shown.
func (m *CatalogModel) Page() catalog.ListPage {
	return m.page
}

// Err returns the error that moved the model into ViewStateError.
func (m *CatalogModel) Err() error {
	return m.err
}

// Init starts loading when the model was created with a fetcher.
func (m *CatalogModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.loading.Init(), m.fetchCmd)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.list.SetHeight(m.listHeight())
		if m.detail != nil {
			m.detail.Resize(winMsg.Width, winMsg.Height)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case catalogLoadedMsg:
		return m.handleLoadingComplete(msg)
	case backToListMsg:
		m.detail = nil
		m.state = ViewStateList
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		return m, m.loading.Update(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting, ViewStateError:
		return m.handleQuitUpdate(msg)
	default:
		return m, nil
	}
}

func (m *CatalogModel) handleLoadingComplete(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}
	m.catalog = msg.catalog
	m.state = ViewStateList
	m.refresh()
	return m, nil
}

func (m *CatalogModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != m.query.Search {
		m.query.Search = m.textInput.Value()
		m.query.Page = pagination.MinPage
		m.refresh()
	}
	return m, cmd
}

func (m *CatalogModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		return m, m.enterDetail()
	case keySlash:
		m.showFilter = true
		return m, m.textInput.Focus()
	case keyS:
		m.cycleSort()
		return m, nil
	case keyLeft, keyH:
		m.gotoPage(m.page.Meta.CurrentPage - 1)
		return m, nil
	case keyRight, keyL:
		m.gotoPage(m.page.Meta.CurrentPage + 1)
		return m, nil
	case keyEsc:
		if m.query.Search != "" {
			m.textInput.SetValue("")
			m.query.Search = ""
			m.query.Page = pagination.MinPage
			m.refresh()
		}
		return m, nil
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *CatalogModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		m.state = ViewStateList
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	_, cmd := m.detail.Update(msg)
	if m.detail.Quitting() {
		m.state = ViewStateQuitting
	}
	return m, cmd
}

func (m *CatalogModel) handleQuitUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	return m, nil
}

// enterDetail opens the highlighted batch.
func (m *CatalogModel) enterDetail() tea.Cmd {
	row, ok := m.list.Current()
	if !ok || m.openDetail == nil {
		return nil
	}
	d, err := m.openDetail(row.Batch)
	if err != nil {
		m.err = err
		m.state = ViewStateError
		return nil
	}
	m.detail = NewDetailModel(m.ctx, d)
	m.detail.Resize(m.width, m.height)
	m.state = ViewStateDetail
	return nil
}

// Detail returns the open detail view, or nil.
func (m *CatalogModel) Detail() *DetailModel {
	return m.detail
}

func (m *CatalogModel) cycleSort() {
	m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
	opt := sortCycle[m.sortIdx]
	m.query.SortField = opt.field
	m.query.SortOrder = opt.order
	m.refresh()
}

func (m *CatalogModel) gotoPage(page int) {
	if page < pagination.MinPage || page > m.page.Meta.TotalPages {
		return
	}
	m.query.Page = page
	m.refresh()
}

// refresh re-runs the query and rebuilds the list.
func (m *CatalogModel) refresh() {
	if m.catalog == nil {
		return
	}
	page, err := m.catalog.Query(m.query)
	if err != nil {
		m.err = err
		m.state = ViewStateError
		return
	}
	m.page = page
	m.query.Page = page.Meta.CurrentPage
	m.list.SetItems(page.Rows)
}

func (m *CatalogModel) listHeight() int {
	return max(m.height-catalogChromeHeight, 1)
}

// View renders the current state.
func (m *CatalogModel) View() string {
	switch m.state {
	case ViewStateLoading:
		return m.loading.View()
	case ViewStateError:
		return CriticalStyle.Render(fmt.Sprintf("Ошибка: %v", m.err)) + "\n" +
			SubtleStyle.Render("Нажмите любую клавишу для выхода.")
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		if m.detail != nil {
			return m.detail.View()
		}
	}
	return m.renderList()
}

func (m *CatalogModel) renderList() string {
	var b strings.Builder

	meta := m.page.Meta
	b.WriteString(HeaderStyle.Render("Пачки заданий"))
	b.WriteString("  ")
	b.WriteString(LabelStyle.Render(format.Count(meta.TotalItems, "пачка заданий", "пачки заданий", "пачек заданий")))
	b.WriteString("  ")
	b.WriteString(SubtleStyle.Render("сортировка " + sortCycle[m.sortIdx].title))
	b.WriteString("\n")

	if m.showFilter || m.query.Search != "" {
		b.WriteString(m.textInput.View())
	} else {
		b.WriteString(SubtleStyle.Render("/ поиск"))
	}
	b.WriteString("\n\n")

	if m.list.Len() == 0 {
		b.WriteString(InfoStyle.Render("Пачки не найдены."))
	} else {
		b.WriteString(renderRowHeader())
		b.WriteString("\n")
		b.WriteString(m.list.View())
	}
	b.WriteString("\n\n")
	b.WriteString(RenderPager(m.page.Window, meta))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("↑/↓ выбор  ←/→ страница  enter открыть  s сортировка  q выход"))
	return b.String()
}

func renderRowHeader() string {
	head := fmt.Sprintf("%-*s %-*s %-*s %*s", colWidthID, "№", colWidthName, "Название",
		colWidthDate, "Создана", colWidthTask, "Задан")
	for _, stage := range domain.Stages() {
		head += "  " + fmt.Sprintf("%-*s", stageBarWidth+colWidthTask+1, StageTitle(stage))
	}
	return LabelStyle.Render(head)
}

// renderRow formats one batch with a bar per stage.
func (m *CatalogModel) renderRow(row catalog.Row, selected bool) string {
	b := row.Batch
	line := fmt.Sprintf("%-*s %-*s %-*s %*d", colWidthID, "#"+strconv.Itoa(b.ID),
		colWidthName, truncate(b.Name, colWidthName), colWidthDate, b.CreatedAt.String(),
		colWidthTask, b.TaskCount)
	if selected {
		line = TableSelectedStyle.Render(line)
	}
	for _, sv := range row.Stages {
		counter := fmt.Sprintf("%d/%d", sv.Progress.Current, sv.Progress.Total)
		if sv.Complete {
			counter = CheckedStyle.Render(fmt.Sprintf("%-*s", colWidthTask, counter))
		} else {
			counter = fmt.Sprintf("%-*s", colWidthTask, counter)
		}
		line += "  " + m.bar.ViewAs(sv.Percent/100) + " " + counter //nolint:mnd // Percent to ratio.
	}
	return line
}

// RenderPager renders previous/next arrows and the page window, e.g.
// "‹ 1 [2] 3 4 5 … 12 ›". Disabled arrows are dimmed.
func RenderPager(w pagination.Window, meta pagination.Meta) string {
	if meta.TotalPages <= 1 {
		return ""
	}
	parts := make([]string, 0, len(w.Pages)+4) //nolint:mnd // Arrows, ellipsis and last page.
	parts = append(parts, arrow("‹", meta.HasPrevious))
	for _, p := range w.Pages {
		parts = append(parts, pageLink(p, w.Current))
	}
	if w.Ellipsis {
		parts = append(parts, SubtleStyle.Render("…"), pageLink(w.Last, w.Current))
	}
	parts = append(parts, arrow("›", meta.HasNext))
	return strings.Join(parts, " ")
}

func arrow(symbol string, enabled bool) string {
	if enabled {
		return ValueStyle.Render(symbol)
	}
	return SubtleStyle.Render(symbol)
}

func pageLink(page, current int) string {
	if page == current {
		return HeaderStyle.Render("[" + strconv.Itoa(page) + "]")
	}
	return LabelStyle.Render(strconv.Itoa(page))
}

// StageTitle returns the column title of a stage.
func StageTitle(s domain.Stage) string {
	switch s {
	case domain.StageAccepted:
		return "Принято"
	case domain.StageSigned:
		return "Подписано"
	case domain.StagePaid:
		return "Оплачено"
	default:
		return string(s)
	}
}

// truncate shortens s to width runes.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + truncateSuffix
}
