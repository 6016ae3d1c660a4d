package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roberto-raggi/cplusplus-go/internal/logger"
	"github.com/roberto-raggi/cplusplus-go/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("212"))

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// row is one line of the token list: an index into the translation unit's
// token array plus everything the view needs to render it without calling
// back into the TranslationUnit on every frame.
type row struct {
	index    int
	kind     string
	spelling string
	line     int
	column   int
}

// model is the bubbletea model driving cxbrowse's single screen: a
// scrollable token list with a diagnostics panel below it, matching the
// header/content/footer layout jinterlante1206-AleutianLocal's diff review
// TUI uses (without that TUI's viewport component, which this module does
// not depend on -- cxbrowse scrolls its own row window instead).
type model struct {
	fileName    string
	rows        []row
	diagnostics []logger.Diagnostic

	cursor      int
	windowStart int

	width  int
	height int
}

func newModel(fileName string, result pipeline.Result, diagnostics []logger.Diagnostic) model {
	tu := result.TranslationUnit
	rows := make([]row, 0, tu.TokenCount())
	for i := 0; i < tu.TokenCount(); i++ {
		tok := tu.TokenAt(i)
		pos := tu.GetPosition(i)
		spelling := tu.Source()
		lo, hi := int(tok.ByteOffset), int(tok.ByteOffset)+int(tok.ByteLength)
		if lo >= 0 && hi <= len(spelling) && lo <= hi {
			spelling = spelling[lo:hi]
		} else {
			spelling = ""
		}
		rows = append(rows, row{
			index:    i,
			kind:     tok.Kind.String(),
			spelling: spelling,
			line:     pos.Line,
			column:   pos.Column,
		})
	}
	return model{fileName: fileName, rows: rows, diagnostics: diagnostics}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "pgup":
			m.moveCursor(-m.listHeight())
		case "pgdown":
			m.moveCursor(m.listHeight())
		case "home", "g":
			m.cursor = 0
			m.windowStart = 0
		case "end", "G":
			m.cursor = len(m.rows) - 1
			m.scrollToCursor()
		}
	}
	return m, nil
}

func (m *model) listHeight() int {
	h := m.height - 6
	if h < 1 {
		h = 10
	}
	return h
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.scrollToCursor()
}

func (m *model) scrollToCursor() {
	height := m.listHeight()
	if m.cursor < m.windowStart {
		m.windowStart = m.cursor
	}
	if m.cursor >= m.windowStart+height {
		m.windowStart = m.cursor - height + 1
	}
	if m.windowStart < 0 {
		m.windowStart = 0
	}
}

func (m model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("cxbrowse — %s (%d tokens)", m.fileName, len(m.rows))))

	height := m.listHeight()
	end := m.windowStart + height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.windowStart; i < end; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("%s  %-20s %q", positionStyle.Render(fmt.Sprintf("%4d:%-3d", r.line, r.column)), r.kind, r.spelling)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.diagnostics) > 0 {
		b.WriteString("\n")
		for _, d := range m.diagnostics {
			style := warningStyle
			if d.Severity >= logger.Error {
				style = errorStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("%s: %s", d.Severity, d.Text)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ move  pgup/pgdn page  g/G top/bottom  q quit"))
	return b.String()
}
