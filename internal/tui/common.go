package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewTracking
	viewAttendance
	viewReview
	viewHistory
	viewRoster
)

var viewNames = []string{"Home", "Track", "Attendance", "Review", "History", "Roster"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// sessionEndedMsg is sent after the active session was archived.
type sessionEndedMsg struct{}

// navigateMsg switches the root view.
type navigateMsg struct {
	view viewState
}

func navigate(v viewState) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: v} }
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func statusError(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: "Error: " + err.Error(), isError: true} }
}

// --- Helpers ---

// formatScore renders a total with an explicit plus sign.
func formatScore(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatDate(t time.Time) string {
	return t.Local().Format("Mon Jan 02, 2006")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func timeOf(msg tickMsg) time.Time { return time.Time(msg) }
