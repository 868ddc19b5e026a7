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

// recentLimit caps the sessions listed on the home screen.
const recentLimit = 5

type homeModel struct {
	tracker *tracker.Tracker
	width   int
	height  int
}

func newHomeModel(t *tracker.Tracker) homeModel {
	return homeModel{tracker: t}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	switch {
	case key.Matches(km, keys.Practice):
		return h, h.start(session.Practice)
	case key.Matches(km, keys.Game):
		return h, h.start(session.Game)
	case key.Matches(km, keys.Resume), key.Matches(km, keys.Enter):
		if _, err := h.tracker.ResumeSession(); err != nil {
			return h, status("No session to resume")
		}
		return h, navigate(viewTracking)
	}
	return h, nil
}

// start never replaces a session in progress; it offers to resume instead.
func (h homeModel) start(kind session.Kind) tea.Cmd {
	if _, err := h.tracker.StartSession(kind); err != nil {
		if h.tracker.State() == session.InProgress {
			return status("A session is in progress. Press r to resume it.")
		}
		return statusError(err)
	}
	return tea.Batch(navigate(viewTracking), status(string(kind)+" started"))
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}
	w := h.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		h.renderSessionPanel(w),
		h.renderRecentPanel(w),
	)
}

func (h homeModel) renderSessionPanel(w int) string {
	var rows []string
	if active, ok := h.tracker.Active(); ok {
		tracked := len(session.ActivePlayers(active, h.tracker.Players()))
		rows = append(rows,
			successStyle.Render("●  ACTIVE SESSION  ")+badge(active.Type),
			mutedStyle.Render(fmt.Sprintf("Started %s · %d players tracked", formatDate(active.Date), tracked)),
			"",
			highlightStyle.Render("Press r to resume"),
		)
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	rows = append(rows,
		titleStyle.Render("START NEW SESSION"),
		"",
		practiceBadgeStyle.Render("p  Practice")+"  "+gameBadgeStyle.Render("g  Game"),
		"",
		mutedStyle.Render("h: history  o: roster"),
	)
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h homeModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	sessions := h.tracker.Sessions()
	if len(sessions) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No sessions recorded yet."),
		))
	}

	players := h.tracker.Players()
	rows := []string{title}
	for i := len(sessions) - 1; i >= 0 && len(sessions)-i <= recentLimit; i-- {
		s := sessions[i]
		rows = append(rows, fmt.Sprintf("  %s %s  %s",
			badge(s.Type),
			formatDate(s.Date),
			mutedStyle.Render(fmt.Sprintf("%d players tracked", len(session.ActivePlayers(s, players)))),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
