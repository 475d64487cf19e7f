package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to centre the cursor in the viewport.
const halfViewportDivisor = 2

// RenderFunc renders one item. selected marks the row under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a scrolling list with a cursor.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// cursor is the index of the highlighted item.
	cursor int

	// visibleFrom and visibleTo bound the rendered rows, end exclusive.
	visibleFrom int
	visibleTo   int

	height int
}

// New creates a list showing at most height rows.
func New[T any](items []T, height int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on navigation keys and follows resizes.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetHeight(msg.Height)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}
	switch msg.Type {
	case tea.KeyUp:
		m.SetCursor(m.cursor - 1)
	case tea.KeyDown:
		m.SetCursor(m.cursor + 1)
	case tea.KeyPgUp:
		m.SetCursor(m.cursor - m.height)
	case tea.KeyPgDown:
		m.SetCursor(m.cursor + m.height)
	case tea.KeyHome:
		m.SetCursor(0)
	case tea.KeyEnd:
		m.SetCursor(len(m.items) - 1)
	case tea.KeyRunes:
		switch msg.String() {
		case "j":
			m.SetCursor(m.cursor + 1)
		case "k":
			m.SetCursor(m.cursor - 1)
		}
	}
}

// SetItems replaces the items and moves the cursor to the first one.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor = 0
	m.updateVisibleRange()
}

// SetHeight changes the viewport height.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.updateVisibleRange()
}

// SetCursor moves the cursor, capped to the item range.
func (m *Model[T]) SetCursor(index int) {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(index, 0), len(m.items)-1)
	m.updateVisibleRange()
}

// Cursor returns the index of the highlighted item.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Current returns the highlighted item.
func (m *Model[T]) Current() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[m.cursor], true
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// VisibleRange returns the rendered rows as [from, to).
func (m *Model[T]) VisibleRange() (int, int) {
	return m.visibleFrom, m.visibleTo
}

func (m *Model[T]) updateVisibleRange() {
	if len(m.items) <= m.height {
		m.visibleFrom, m.visibleTo = 0, len(m.items)
		return
	}
	from := m.cursor - m.height/halfViewportDivisor
	from = min(max(from, 0), len(m.items)-m.height)
	m.visibleFrom, m.visibleTo = from, from+m.height
}

// View renders the visible rows.
func (m *Model[T]) View() string {
	var b strings.Builder
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		if i > m.visibleFrom {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderFunc(m.items[i], i == m.cursor))
	}
	return b.String()
}
