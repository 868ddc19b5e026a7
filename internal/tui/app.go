package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/tracker"
)

// tabs are the views reachable from the header with tab.
var tabs = []viewState{viewHome, viewTracking, viewHistory, viewRoster}

var exportFormats = []string{"CSV", "JSON"}

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	width   int
	height  int
	now     time.Time

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home       homeModel
	tracking   trackingModel
	attendance attendanceModel
	review     reviewModel
	history    historyModel
	roster     rosterModel

	help  help.Model
	toast toast
}

func NewApp(t *tracker.Tracker) App {
	h := help.New()
	h.ShowAll = false

	return App{
		tracker:    t,
		now:        time.Now(),
		activeView: viewHome,
		home:       newHomeModel(t),
		tracking:   newTrackingModel(t),
		attendance: newAttendanceModel(t),
		review:     newReviewModel(t),
		history:    newHistoryModel(t),
		roster:     newRosterModel(t),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.tracking.setSize(a.width, contentHeight)
		a.attendance.setSize(a.width, contentHeight)
		a.review.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.roster.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child form captures all input.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.ExportAll):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewHistory), nil
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewRoster), nil
		case key.Matches(msg, keys.Tab):
			return a.switchTo(a.nextTab()), nil
		}

	case tickMsg:
		a.now = timeOf(msg)
		var cmd tea.Cmd
		a.tracking, cmd = a.tracking.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case navigateMsg:
		return a.switchTo(msg.view), nil

	case statusMsg:
		a.toast = newToast(msg.text, msg.isError, a.clock())
		return a, nil

	case exportDoneMsg:
		a.exportPicking = false
		a.toast = newToast("Exported to "+msg.path, false, a.clock())
		return a, nil

	case sessionEndedMsg:
		a.tracking.syncClock()
		a.history.refresh()
		return a, nil
	}

	return a.updateActiveView(msg)
}

// clock prefers the wall clock but falls back to the last tick.
func (a App) clock() time.Time {
	if now := time.Now(); now.After(a.now) {
		return now
	}
	return a.now
}

// switchTo changes view, refusing session views when nothing is in progress.
func (a App) switchTo(v viewState) App {
	switch v {
	case viewTracking, viewAttendance, viewReview:
		if a.tracker.State() != session.InProgress {
			a.toast = newToast("No session in progress", false, a.clock())
			return a
		}
		a.tracking.syncClock()
	case viewHistory:
		a.history.refresh()
	}
	a.activeView = v
	return a
}

func (a App) nextTab() viewState {
	current := 0
	for i, v := range tabs {
		if v == a.tabOf(a.activeView) {
			current = i
		}
	}
	for step := 1; step <= len(tabs); step++ {
		v := tabs[(current+step)%len(tabs)]
		if v == viewTracking && a.tracker.State() != session.InProgress {
			continue
		}
		return v
	}
	return viewHome
}

// tabOf maps sub-views of a session onto the Track tab.
func (a App) tabOf(v viewState) viewState {
	if v == viewAttendance || v == viewReview {
		return viewTracking
	}
	return v
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewTracking:
		a.tracking, cmd = a.tracking.update(msg)
	case viewAttendance:
		a.attendance, cmd = a.attendance.update(msg)
	case viewReview:
		a.review, cmd = a.review.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewRoster:
		a.roster, cmd = a.roster.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewReview:
		return a.review.formActive
	case viewRoster:
		return a.roster.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewTracking:
		content = a.tracking.view()
	case viewAttendance:
		content = a.attendance.view()
	case viewReview:
		content = a.review.view()
	case viewHistory:
		content = a.history.view()
	case viewRoster:
		content = a.roster.view()
	}

	contentHeight := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(footer))

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var rendered []string
	for _, v := range tabs {
		name := viewNames[v]
		if v == a.tabOf(a.activeView) {
			rendered = append(rendered, activeTabStyle.Render(name))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("laxtime")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	status := ""
	if a.toast.visible(a.clock()) {
		style := successStyle
		if a.toast.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.toast.text)
	}

	sessionInfo := ""
	if a.tracker.State() == session.InProgress {
		sessionInfo = successStyle.Render(" ● " + formatDuration(a.tracking.clock.currentElapsed()))
	}

	right := sessionInfo + status
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export All Sessions"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		a.exportCursor = clamp(a.exportCursor-1, 0, len(exportFormats)-1)
	case key.Matches(msg, keys.Down):
		a.exportCursor = clamp(a.exportCursor+1, 0, len(exportFormats)-1)
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	t := a.tracker
	return func() tea.Msg {
		export := t.ExportArchive
		if format == 1 {
			export = t.ExportArchiveJSON
		}
		path, err := export()
		if err != nil {
			return statusMsg{text: "Export error: " + err.Error(), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
