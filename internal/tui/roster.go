package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/laxtime/internal/tracker"
)

type rosterModel struct {
	tracker *tracker.Tracker
	width   int
	height  int
	cursor  int

	formActive bool
	form       *huh.Form
	editing    int // roster index being renamed

	// Form field pointer (survives value copies)
	formName *string
}

func newRosterModel(t *tracker.Tracker) rosterModel {
	name := ""
	return rosterModel{tracker: t, formName: &name}
}

func (r *rosterModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r rosterModel) update(msg tea.Msg) (rosterModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	players := r.tracker.Players()
	switch {
	case key.Matches(km, keys.Up):
		r.cursor = clamp(r.cursor-1, 0, len(players)-1)
	case key.Matches(km, keys.Down):
		r.cursor = clamp(r.cursor+1, 0, len(players)-1)
	case key.Matches(km, keys.New):
		name := r.tracker.AddPlayer()
		r.cursor = len(players)
		return r, status("Added " + name)
	case key.Matches(km, keys.Enter):
		if r.cursor < len(players) {
			return r.showRenameForm(r.cursor, players[r.cursor])
		}
	case key.Matches(km, keys.Delete):
		if r.cursor >= len(players) {
			return r, nil
		}
		name := players[r.cursor]
		if !r.tracker.RemovePlayer(r.cursor) {
			return r, status("The roster needs at least one player")
		}
		r.cursor = clamp(r.cursor, 0, len(players)-2)
		return r, status("Removed " + name)
	case key.Matches(km, keys.Back):
		return r, navigate(viewHome)
	}
	return r, nil
}

func (r rosterModel) showRenameForm(index int, current string) (rosterModel, tea.Cmd) {
	*r.formName = current
	r.editing = index

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Player Name").
				Value(r.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r rosterModel) updateForm(msg tea.Msg) (rosterModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		r.formActive = false
		r.form = nil
		return r, nil
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		r.form = nil
		name := strings.TrimSpace(*r.formName)
		if r.tracker.RenamePlayer(r.editing, name) {
			return r, status("Renamed to " + name)
		}
		return r, nil
	}
	return r, cmd
}

func (r rosterModel) view() string {
	w := r.width - 4
	if r.formActive && r.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Rename Player"), "", r.form.View()),
		)
	}

	players := r.tracker.Players()
	rows := []string{
		titleStyle.Render("Roster") + "  " + mutedStyle.Render(fmt.Sprintf("%d players", len(players))),
		"",
	}
	for i, p := range players {
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, p)))
	}
	rows = append(rows, "", mutedStyle.Render("  n: add  enter: rename  d: remove  esc: home"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
