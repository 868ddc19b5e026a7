package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/tracker"
)

// markable lists the categories the +/- keys apply to. Attendance has its
// own view.
var markable = func() []string {
	var out []string
	for _, c := range session.Categories() {
		if c != session.Attendance {
			out = append(out, c)
		}
	}
	return out
}()

type trackingModel struct {
	tracker *tracker.Tracker
	clock   sessionClock
	width   int
	height  int

	cursor    int
	selected  string // player being scored; empty shows the grid
	catCursor int
}

func newTrackingModel(t *tracker.Tracker) trackingModel {
	m := trackingModel{tracker: t}
	m.syncClock()
	return m
}

func (m *trackingModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// syncClock starts or stops the clock to match the active session.
func (m *trackingModel) syncClock() {
	if r, ok := m.tracker.Active(); ok {
		if !m.clock.running || !m.clock.startTime.Equal(r.Date) {
			m.clock.start(r.Date)
		}
		return
	}
	m.clock.stop()
}

func (m trackingModel) columns() int {
	if m.width > 96 {
		return 4
	}
	return 2
}

func (m trackingModel) update(msg tea.Msg) (trackingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.syncClock()
		m.clock.tick(timeOf(msg))
		return m, nil
	case tea.KeyMsg:
		if m.selected != "" {
			return m.updateCategories(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m trackingModel) updateGrid(msg tea.KeyMsg) (trackingModel, tea.Cmd) {
	players := m.tracker.Players()
	last := len(players) - 1
	cols := m.columns()

	switch {
	case key.Matches(msg, keys.Up):
		m.cursor = clamp(m.cursor-cols, 0, last)
	case key.Matches(msg, keys.Down):
		m.cursor = clamp(m.cursor+cols, 0, last)
	case key.Matches(msg, keys.Left):
		m.cursor = clamp(m.cursor-1, 0, last)
	case key.Matches(msg, keys.Right):
		m.cursor = clamp(m.cursor+1, 0, last)
	case key.Matches(msg, keys.Enter):
		if m.cursor <= last {
			m.selected = players[m.cursor]
			m.catCursor = 0
		}
	case key.Matches(msg, keys.Attendance):
		return m, navigate(viewAttendance)
	case key.Matches(msg, keys.Review):
		return m, navigate(viewReview)
	case key.Matches(msg, keys.Save):
		return m, endSession(m.tracker)
	case key.Matches(msg, keys.Back):
		return m, navigate(viewHome)
	}
	return m, nil
}

func (m trackingModel) updateCategories(msg tea.KeyMsg) (trackingModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.catCursor = clamp(m.catCursor-1, 0, len(markable)-1)
	case key.Matches(msg, keys.Down):
		m.catCursor = clamp(m.catCursor+1, 0, len(markable)-1)
	case key.Matches(msg, keys.Plus):
		return m, m.mark(1)
	case key.Matches(msg, keys.Minus):
		return m, m.mark(-1)
	case key.Matches(msg, keys.Undo):
		if m.tracker.UndoLast() {
			return m, status("Undone")
		}
		return m, status("Nothing to undo")
	case key.Matches(msg, keys.Back):
		m.selected = ""
	}
	return m, nil
}

func (m trackingModel) mark(delta int) tea.Cmd {
	category := markable[m.catCursor]
	if err := m.tracker.RecordMark(m.selected, category, delta); err != nil {
		return statusError(err)
	}
	return func() tea.Msg {
		return statusMsg{
			text:    fmt.Sprintf("%s: %s %s", m.selected, formatScore(delta), category),
			isError: delta < 0,
		}
	}
}

// endSession archives the active session and returns home.
func endSession(t *tracker.Tracker) tea.Cmd {
	if _, err := t.EndSession(); err != nil {
		return statusError(err)
	}
	return tea.Batch(
		func() tea.Msg { return sessionEndedMsg{} },
		navigate(viewHome),
		status("Session saved!"),
	)
}

func (m trackingModel) view() string {
	active, ok := m.tracker.Active()
	if !ok {
		return mutedStyle.Render("No active session. Press esc to go home.")
	}
	w := m.width - 4
	if m.selected != "" {
		return m.renderCategories(active, w)
	}
	return m.renderGrid(active, w)
}

func (m trackingModel) renderHeader(active *session.Record) string {
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		badge(active.Type), "  ",
		mutedStyle.Render(formatDate(active.Date)), "  ",
		highlightStyle.Render(formatDuration(m.clock.currentElapsed())),
	)
}

func (m trackingModel) renderGrid(active *session.Record, w int) string {
	players := m.tracker.Players()
	cols := m.columns()
	cellWidth := max(12, (w-6)/cols)

	var lines []string
	var cells []string
	for i, p := range players {
		style := normalItemStyle
		cursor := "  "
		if i == m.cursor {
			style = selectedItemStyle
			cursor = "> "
		}
		name := truncate(p, cellWidth-8)
		cell := lipgloss.NewStyle().Width(cellWidth).Render(
			style.Render(cursor+name) + " " + renderScore(session.Total(active, p)),
		)
		cells = append(cells, cell)
		if len(cells) == cols {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(active),
		"",
		mutedStyle.Render("Select a player to record"),
		"",
		strings.Join(lines, "\n"),
		"",
		mutedStyle.Render("  enter: score  a: attendance  v: review  S: save & end  esc: home"),
	)
	return activePanelStyle.Width(w).Render(content)
}

func (m trackingModel) renderCategories(active *session.Record, w int) string {
	total := session.Total(active, m.selected)
	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Bottom,
			titleStyle.Render(m.selected), "  ", mutedStyle.Render("Total: "), renderScore(total)),
		"",
	}

	i := 0
	for _, g := range session.Groups() {
		rows = append(rows, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(g.Color)).Render(g.Name))
		for _, c := range g.Categories {
			if c == session.Attendance {
				present := "○ absent"
				if session.IsPresent(active, m.selected) {
					present = "✓ present"
				}
				rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %-20s %s", c, present)))
				continue
			}
			cursor := "  "
			style := normalItemStyle
			if i == m.catCursor {
				cursor = "> "
				style = selectedItemStyle
			}
			label := style.Render(fmt.Sprintf("%s%-20s", cursor, c))
			rows = append(rows, "  "+label+" "+renderScore(session.CategoryTotal(active, m.selected, c)))
			i++
		}
		rows = append(rows, "")
	}

	undo := mutedStyle.Render("u: undo (nothing)")
	if last, ok := m.tracker.LastAction(); ok {
		undo = warningStyle.Render(fmt.Sprintf("u: undo %s %s for %s", formatScore(last.Delta), last.Category, last.Player))
	}
	rows = append(rows, undo, mutedStyle.Render("+/-: mark  ↑/↓: category  esc: players"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
