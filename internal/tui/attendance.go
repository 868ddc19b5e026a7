package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/tracker"
)

type attendanceModel struct {
	tracker *tracker.Tracker
	width   int
	height  int
	cursor  int
}

func newAttendanceModel(t *tracker.Tracker) attendanceModel {
	return attendanceModel{tracker: t}
}

func (m *attendanceModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m attendanceModel) update(msg tea.Msg) (attendanceModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	players := m.tracker.Players()
	switch {
	case key.Matches(km, keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(players)-1)
	case key.Matches(km, keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(players)-1)
	case key.Matches(km, keys.Enter), km.String() == " ":
		if m.cursor >= len(players) {
			return m, nil
		}
		p := players[m.cursor]
		present, err := m.tracker.ToggleAttendance(p)
		if err != nil {
			return m, statusError(err)
		}
		if present {
			return m, status(p + ": present")
		}
		return m, status(p + ": absent")
	case key.Matches(km, keys.Back):
		return m, navigate(viewTracking)
	}
	return m, nil
}

func (m attendanceModel) view() string {
	active, ok := m.tracker.Active()
	if !ok {
		return mutedStyle.Render("No active session.")
	}
	players := m.tracker.Players()
	w := m.width - 4

	rows := []string{
		titleStyle.Render("Attendance") + "  " +
			mutedStyle.Render(fmt.Sprintf("%d/%d present", session.PresentCount(active, players), len(players))),
		"",
	}
	for i, p := range players {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := mutedStyle.Render("○")
		if session.IsPresent(active, p) {
			mark = successStyle.Render("✓")
		}
		rows = append(rows, fmt.Sprintf("%s %s", mark, style.Render(cursor+p)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter/space: toggle  esc: done"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
