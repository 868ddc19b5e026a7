package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/laxtime/internal/export"
	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/tracker"
)

type historyModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	sessions []*session.Record // most recent first
	cursor   int
	detail   *session.Record

	chart barchart.Model
}

func newHistoryModel(t *tracker.Tracker) historyModel {
	m := historyModel{
		tracker: t,
		chart:   barchart.New(60, 10),
	}
	m.refresh()
	return m
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
	if m.detail != nil {
		m.buildChart()
	}
}

// refresh reloads the archive, newest first.
func (m *historyModel) refresh() {
	all := m.tracker.Sessions()
	m.sessions = m.sessions[:0]
	for i := len(all) - 1; i >= 0; i-- {
		m.sessions = append(m.sessions, all[i])
	}
	m.cursor = clamp(m.cursor, 0, max(0, len(m.sessions)-1))
	if m.detail != nil {
		if r, ok := m.tracker.Session(m.detail.ID); ok {
			m.detail = r
			m.buildChart()
		} else {
			m.detail = nil
		}
	}
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEndedMsg:
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m historyModel) updateList(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.cursor = clamp(m.cursor-1, 0, max(0, len(m.sessions)-1))
	case key.Matches(msg, keys.Down):
		m.cursor = clamp(m.cursor+1, 0, max(0, len(m.sessions)-1))
	case key.Matches(msg, keys.Enter):
		if len(m.sessions) > 0 {
			m.detail = m.sessions[m.cursor]
			m.buildChart()
		}
	case key.Matches(msg, keys.Back):
		return m, navigate(viewHome)
	}
	return m, nil
}

func (m historyModel) updateDetail(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Delete):
		id := m.detail.ID
		m.tracker.DeleteSession(id)
		m.detail = nil
		m.refresh()
		return m, status("Session deleted")
	case key.Matches(msg, keys.Export):
		path, err := m.tracker.ExportSession(m.detail.ID)
		if err != nil {
			return m, statusError(err)
		}
		return m, func() tea.Msg { return exportDoneMsg{path: path} }
	case key.Matches(msg, keys.Back):
		m.detail = nil
	}
	return m, nil
}

// buildChart draws plus and minus mark counts per tracked player.
func (m *historyModel) buildChart() {
	chartWidth := max(20, m.width-8)
	chartHeight := 10
	if m.height > 36 {
		chartHeight = 14
	}
	m.chart = barchart.New(chartWidth, chartHeight)

	plusStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	minusStyle := lipgloss.NewStyle().Foreground(colorError)

	var bars []barchart.BarData
	for _, p := range export.Players(m.detail, m.tracker.Players()) {
		plus, minus := markCounts(m.detail, p)
		bars = append(bars, barchart.BarData{
			Label: truncate(p, 8),
			Values: []barchart.BarValue{
				{Name: "+", Value: float64(plus), Style: plusStyle},
				{Name: "-", Value: float64(minus), Style: minusStyle},
			},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{Label: "", Values: []barchart.BarValue{{Name: "", Value: 0, Style: mutedStyle}}}}
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

// markCounts counts positive and negative marks, excluding attendance.
func markCounts(r *session.Record, player string) (plus, minus int) {
	for c, list := range r.Marks[player] {
		if c == session.Attendance {
			continue
		}
		for _, v := range list {
			if v > 0 {
				plus++
			} else if v < 0 {
				minus++
			}
		}
	}
	return plus, minus
}

func (m historyModel) view() string {
	w := m.width - 4
	if m.detail != nil {
		return m.renderDetail(w)
	}

	title := titleStyle.Render("Session History")
	if len(m.sessions) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No sessions recorded yet."), "",
			mutedStyle.Render("  esc: home"),
		))
	}

	players := m.tracker.Players()
	rows := []string{title, ""}
	for i, s := range m.sessions {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s%s %s  %s",
			cursor, badge(s.Type), style.Render(formatDate(s.Date)),
			mutedStyle.Render(fmt.Sprintf("%d players tracked", len(session.ActivePlayers(s, players)))),
		))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: open  E: export all  esc: home"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m historyModel) renderDetail(w int) string {
	r := m.detail
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, badge(r.Type), "  ", mutedStyle.Render(formatDate(r.Date)))

	rows := []string{header, ""}
	for _, p := range export.Players(r, m.tracker.Players()) {
		rows = append(rows, fmt.Sprintf("  %s %s", normalItemStyle.Render(p), renderScore(session.Total(r, p))))
		if tags := breakdown(r, p); tags != "" {
			rows = append(rows, "    "+tags)
		}
		if note := r.Notes[p]; note != "" {
			rows = append(rows, "    "+mutedStyle.Render(note))
		}
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(rows, "\n"),
		"",
		m.chart.View(),
		"",
		mutedStyle.Render("  e: export  d: delete  esc: back"),
	))
}
