package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/taskbatch/internal/actions"
	"github.com/rshade/taskbatch/internal/detail"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/format"
)

// detailChromeHeight is the number of lines used by the header, summary and help.
const detailChromeHeight = 14

// menuMode is the action submenu currently open in the detail view.
type menuMode int

const (
	menuNone menuMode = iota
	menuAct
	menuExport
)

// actKeys maps the act submenu keys to act types.
//
//nolint:gochecknoglobals // Fixed key map.
var actKeys = map[string]actions.ActType{
	keyOne:   actions.ActGPH,
	keyTwo:   actions.ActOIS,
	keyThree: actions.ActSelfEmployed,
}

// exportKeys maps the export submenu keys to formats.
//
//nolint:gochecknoglobals // Fixed key map.
var exportKeys = map[string]actions.ExportFormat{
	keyJSON: actions.FormatJSON,
	keyYAML: actions.FormatYAML,
	keyC:    actions.FormatCSV,
}

// DetailModel is the Bubble Tea model for one batch.
type DetailModel struct {
	ctx    context.Context
	detail *detail.Detail
	table  table.Model
	menu   menuMode

	// status is the outcome of the last bulk action.
	status    string
	statusErr bool

	quitting bool
	width    int
	height   int
}

// NewDetailModel creates a view over d. Bulk actions run with ctx.
func NewDetailModel(ctx context.Context, d *detail.Detail) *DetailModel {
	m := &DetailModel{
		ctx:    ctx,
		detail: d,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.table = NewTaskTable(d.Rows(), m.tableHeight())
	return m
}

// NewTaskTable creates the task table with a selection column.
func NewTaskTable(rows []detail.Row, height int) table.Model {
	columns := []table.Column{
		{Title: "", Width: 3},             //nolint:mnd // Column width.
		{Title: "№", Width: 6},            //nolint:mnd // Column width.
		{Title: "Задание", Width: 30},     //nolint:mnd // Column width.
		{Title: "Исполнитель", Width: 22}, //nolint:mnd // Column width.
		{Title: "Статус", Width: 16},      //nolint:mnd // Column width.
		{Title: "Сумма", Width: 14},       //nolint:mnd // Column width.
		{Title: "Срок", Width: 10},        //nolint:mnd // Column width.
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(taskTableRows(rows)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

func taskTableRows(rows []detail.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{
			checkbox(r.Selected),
			strconv.Itoa(r.Task.ID),
			r.Task.Title,
			r.Task.ExecutorName,
			r.Label.Text,
			format.FormatMoney(r.Task.Amount),
			r.Task.Deadline.String(),
		}
	}
	return out
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// Resize adapts the table to a new window size.
func (m *DetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(m.tableHeight())
}

func (m *DetailModel) tableHeight() int {
	return max(m.height-detailChromeHeight, 1)
}

// Quitting reports whether the user asked to exit the program.
func (m *DetailModel) Quitting() bool {
	return m.quitting
}

// Status returns the message of the last bulk action.
func (m *DetailModel) Status() string {
	return m.status
}

// Detail returns the underlying batch view state.
func (m *DetailModel) Detail() *detail.Detail {
	return m.detail
}

// Init implements tea.Model.
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(winMsg.Width, winMsg.Height)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch m.menu {
	case menuAct:
		return m.handleActMenu(keyMsg)
	case menuExport:
		return m.handleExportMenu(keyMsg)
	case menuNone:
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keySpace:
		m.toggleCurrent()
		return m, nil
	case keyA:
		m.detail.ToggleSelectAll()
		m.syncRows()
		return m, nil
	case keyEsc, keyBack:
		if m.detail.ActionsEnabled() {
			m.detail.ClearSelection()
			m.syncRows()
			return m, nil
		}
		return m, func() tea.Msg { return backToListMsg{} }
	case keyC:
		if m.detail.ActionsEnabled() {
			m.menu = menuAct
		}
		return m, nil
	case keyE:
		if m.detail.ActionsEnabled() {
			m.menu = menuExport
		}
		return m, nil
	case keyN:
		if m.detail.ActionsEnabled() {
			cmd, err := m.detail.SendNotification(m.ctx)
			m.report(err, fmt.Sprintf("Уведомление отправлено: %s", tasksCount(len(cmd.TaskIDs))))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *DetailModel) handleActMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.menu = menuNone
	actType, ok := actKeys[msg.String()]
	if !ok {
		return m, nil
	}
	cmd, err := m.detail.CreateAct(m.ctx, actType)
	m.report(err, fmt.Sprintf("%s: %s", actType.Label(), tasksCount(len(cmd.TaskIDs))))
	return m, nil
}

func (m *DetailModel) handleExportMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.menu = menuNone
	exportFormat, ok := exportKeys[msg.String()]
	if !ok {
		return m, nil
	}
	cmd, err := m.detail.Export(m.ctx, exportFormat)
	m.report(err, fmt.Sprintf("Выгрузка %s: %s", strings.ToUpper(string(exportFormat)),
		tasksCount(len(cmd.TaskIDs))))
	return m, nil
}

// report records the outcome of a bulk action and refreshes the table.
func (m *DetailModel) report(err error, success string) {
	m.syncRows()
	if err != nil {
		m.statusErr = true
		m.status = "Ошибка: " + err.Error()
		if errors.Is(err, detail.ErrEmptySelection) {
			m.status = "Не выбрано ни одного задания"
		}
		return
	}
	m.statusErr = false
	m.status = success
}

func (m *DetailModel) toggleCurrent() {
	tasks := m.detail.Tasks()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(tasks) {
		return
	}
	// The id comes from the current task list, so the toggle cannot fail.
	_, _ = m.detail.ToggleTask(tasks[cursor].ID)
	m.syncRows()
}

// syncRows redraws the selection column.
func (m *DetailModel) syncRows() {
	m.table.SetRows(taskTableRows(m.detail.Rows()))
}

func tasksCount(n int) string {
	return format.Count(n, "задание", "задания", "заданий")
}

// View renders the batch header, summary, task table and help line.
func (m *DetailModel) View() string {
	var b strings.Builder
	batch := m.detail.Batch()

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Пачка #%d  %s", batch.ID, batch.Name)))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Создана " + batch.CreatedAt.String()))
	b.WriteString("\n")
	b.WriteString(RenderDetailSummary(m.detail.Summary(), m.width))
	b.WriteString("\n")

	if len(m.detail.Tasks()) == 0 {
		b.WriteString(InfoStyle.Render("В пачке нет заданий."))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(WarningStyle.Render(m.status))
		} else {
			b.WriteString(CheckedStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *DetailModel) renderHelp() string {
	switch m.menu {
	case menuAct:
		parts := make([]string, 0, len(actions.ActTypes()))
		for i, t := range actions.ActTypes() {
			parts = append(parts, fmt.Sprintf("%d %s", i+1, t.Label()))
		}
		return InfoStyle.Render("Сформировать: " + strings.Join(parts, "  ") + "  esc отмена")
	case menuExport:
		return InfoStyle.Render("Выгрузить: j JSON  y YAML  c CSV  esc отмена")
	case menuNone:
	}
	if m.detail.ActionsEnabled() {
		return SubtleStyle.Render("space выбрать  a все  c акт  n уведомить  e выгрузить  esc снять выбор  q выход")
	}
	return SubtleStyle.Render("space выбрать  a все  esc назад  q выход")
}

// RenderDetailSummary renders the boxed status counters and amounts of a batch.
func RenderDetailSummary(s detail.Summary, width int) string {
	var content strings.Builder

	content.WriteString(LabelStyle.Render("Заданий: "))
	content.WriteString(ValueStyle.Render(strconv.Itoa(s.Tasks)))
	content.WriteString(LabelStyle.Render("    Сумма: "))
	content.WriteString(ValueStyle.Render(format.FormatMoney(s.TotalAmount)))
	if s.Selected > 0 {
		content.WriteString(LabelStyle.Render("    Выбрано: "))
		content.WriteString(ValueStyle.Render(fmt.Sprintf("%d (%s)", s.Selected, format.FormatMoney(s.SelectedAmount))))
	}
	content.WriteString("\n")

	parts := make([]string, 0, len(domain.Statuses()))
	for _, status := range domain.Statuses() {
		label, err := domain.StatusLabel(status)
		if err != nil {
			continue
		}
		parts = append(parts, StatusBadge(label)+" "+ValueStyle.Render(strconv.Itoa(s.Count(status))))
	}
	content.WriteString(strings.Join(parts, "   "))

	return BoxStyle.Width(max(width-borderPadding, 1)).Render(content.String())
}
