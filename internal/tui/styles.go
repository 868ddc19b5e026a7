package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/laxtime/internal/session"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#3B82F6")
	colorPractice  = lipgloss.Color("#1E3A5F")
	colorGame      = lipgloss.Color("#5F1E1E")
	colorMuted     = lipgloss.Color("#64748B")
	colorSuccess   = lipgloss.Color("#22C55E")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorFg        = lipgloss.Color("#E2E8F0")
	colorSubtle    = lipgloss.Color("#334155")
	colorHighlight = lipgloss.Color("#93C5FD")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Session type badges
	practiceBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorFg).
				Background(colorPractice).
				Padding(0, 1)

	gameBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg).
			Background(colorGame).
			Padding(0, 1)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// scoreStyle colours a total green, red or grey.
func scoreStyle(n int) lipgloss.Style {
	switch {
	case n > 0:
		return successStyle
	case n < 0:
		return errorStyle
	}
	return mutedStyle
}

func renderScore(n int) string {
	return scoreStyle(n).Render(formatScore(n))
}

func badge(kind session.Kind) string {
	if kind == session.Game {
		return gameBadgeStyle.Render(string(kind))
	}
	return practiceBadgeStyle.Render(string(kind))
}

func groupStyle(category string) lipgloss.Style {
	g, ok := session.GroupOf(category)
	if !ok {
		return mutedStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color))
}
