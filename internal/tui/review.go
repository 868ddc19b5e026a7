package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/tracker"
)

type reviewModel struct {
	tracker *tracker.Tracker
	width   int
	height  int
	cursor  int

	formActive bool
	form       *huh.Form
	notePlayer string
	// Form value as a pointer (survives value copies)
	noteText *string
}

func newReviewModel(t *tracker.Tracker) reviewModel {
	text := ""
	return reviewModel{tracker: t, noteText: &text}
}

func (m *reviewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m reviewModel) update(msg tea.Msg) (reviewModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

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
	case key.Matches(km, keys.Note):
		if m.cursor < len(players) {
			return m.showNoteForm(players[m.cursor])
		}
	case key.Matches(km, keys.Save):
		return m, endSession(m.tracker)
	case key.Matches(km, keys.Back):
		return m, navigate(viewTracking)
	}
	return m, nil
}

func (m reviewModel) showNoteForm(player string) (reviewModel, tea.Cmd) {
	active, ok := m.tracker.Active()
	if !ok {
		return m, status("No active session")
	}
	m.notePlayer = player
	*m.noteText = active.Notes[player]

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Notes for " + player).
				Placeholder("Add notes...").
				CharLimit(2000).
				Value(m.noteText),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m reviewModel) updateForm(msg tea.Msg) (reviewModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		if err := m.tracker.SetNote(m.notePlayer, *m.noteText); err != nil {
			return m, statusError(err)
		}
		return m, status("Note saved for " + m.notePlayer)
	}
	return m, cmd
}

func (m reviewModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Review & Notes"), "", m.form.View()),
		)
	}

	active, ok := m.tracker.Active()
	if !ok {
		return mutedStyle.Render("No active session.")
	}

	rows := []string{titleStyle.Render("Review & Notes"), ""}
	for i, p := range m.tracker.Players() {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s %s", style.Render(cursor+p), renderScore(session.Total(active, p))))
		if tags := breakdown(active, p); tags != "" {
			rows = append(rows, "    "+tags)
		}
		if note := active.Notes[p]; note != "" {
			rows = append(rows, "    "+mutedStyle.Render("“"+note+"”"))
		}
	}
	rows = append(rows, "", mutedStyle.Render("  enter: edit note  S: save & end  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// breakdown lists each category the player has marks in, coloured by group.
func breakdown(r *session.Record, player string) string {
	var tags []string
	for _, c := range session.Categories() {
		if len(r.Marks[player][c]) == 0 {
			continue
		}
		v := session.CategoryTotal(r, player, c)
		tags = append(tags, groupStyle(c).Render(c)+" "+renderScore(v))
	}
	return strings.Join(tags, "  ")
}
