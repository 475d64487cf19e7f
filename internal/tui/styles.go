package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rshade/taskbatch/internal/domain"
)

// ViewState is the screen a model is currently showing.
type ViewState int

const (
	// ViewStateLoading is shown while data is fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the batch list.
	ViewStateList
	// ViewStateDetail shows one batch.
	ViewStateDetail
	// ViewStateQuitting is set once the program is exiting.
	ViewStateQuitting
	// ViewStateError shows a fatal error.
	ViewStateError
)

// Key bindings shared by the models.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
	keySpace = " "
	keyA     = "a"
	keyC     = "c"
	keyN     = "n"
	keyE     = "e"
	keyLeft  = "left"
	keyRight = "right"
	keyH     = "h"
	keyL     = "l"
	keyBack  = "backspace"
	keyOne   = "1"
	keyTwo   = "2"
	keyThree = "3"
	keyJSON  = "j"
	keyYAML  = "y"
)

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30

	filterInputCharLimit = 64
	filterInputWidth     = 40

	borderPadding = 2
)

// Colour palette.
//
//nolint:gochecknoglobals // Read-only palette shared by all views.
var (
	ColorHeader   = lipgloss.Color("86")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("255")
	ColorSubtle   = lipgloss.Color("241")
	ColorBorder   = lipgloss.Color("63")
	ColorBlue     = lipgloss.Color("39")
	ColorYellow   = lipgloss.Color("220")
	ColorGreen    = lipgloss.Color("42")
	ColorPurple   = lipgloss.Color("141")
	ColorWarning  = lipgloss.Color("214")
	ColorCritical = lipgloss.Color("196")
	ColorSelected = lipgloss.Color("57")
)

// Styles.
//
//nolint:gochecknoglobals // Read-only styles shared by all views.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorSubtle)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorBlue)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	BoxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorSubtle)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(ColorSelected)
	CheckedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
)

// categoryColor maps a status category to its badge colour.
func categoryColor(c domain.Category) lipgloss.Color {
	switch c {
	case domain.CategoryBlue:
		return ColorBlue
	case domain.CategoryYellow:
		return ColorYellow
	case domain.CategoryGreen:
		return ColorGreen
	case domain.CategoryPurple:
		return ColorPurple
	default:
		return ColorSubtle
	}
}

// StatusBadge renders a status label in its category colour.
func StatusBadge(label domain.Label) string {
	return lipgloss.NewStyle().Foreground(categoryColor(label.Category)).Render(label.Text)
}

// TerminalWidth returns the width of stdout, or defaultWidth when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
