package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/store"
	"github.com/sadopc/laxtime/internal/tracker"
)

func newTestTracker(t *testing.T, players ...string) *tracker.Tracker {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return tracker.Open(store.NewGateway(s),
		tracker.WithDefaultPlayers(players),
		tracker.WithExportDir(t.TempDir()),
	)
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func navigatesTo(msgs []tea.Msg, v viewState) bool {
	for _, m := range msgs {
		if n, ok := m.(navigateMsg); ok && n.view == v {
			return true
		}
	}
	return false
}

func statusText(msgs []tea.Msg) string {
	for _, m := range msgs {
		if s, ok := m.(statusMsg); ok {
			return s.text
		}
	}
	return ""
}

// ============================================================
// Helpers
// ============================================================

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{3, "+3"},
		{-2, "-2"},
	}
	for _, tt := range tests {
		if got := formatScore(tt.in); got != tt.want {
			t.Errorf("formatScore(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{90 * time.Second, "00:01:30"},
		{2*time.Hour + 5*time.Minute + 7*time.Second, "02:05:07"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if clamp(-1, 0, 5) != 0 || clamp(9, 0, 5) != 5 || clamp(3, 0, 5) != 3 {
		t.Fatal("clamp out of bounds")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Short", 10); got != "Short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("Bartholomew", 5); got != "Bart…" {
		t.Fatalf("got %q", got)
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != int(viewRoster)+1 {
		t.Fatalf("expected %d view names, got %d", viewRoster+1, len(viewNames))
	}
}

// ============================================================
// Session clock and toast
// ============================================================

func TestSessionClock(t *testing.T) {
	var c sessionClock
	if c.currentElapsed() != 0 {
		t.Fatal("stopped clock should read zero")
	}

	start := time.Now().Add(-time.Minute)
	c.start(start)
	c.tick(start.Add(90 * time.Second))
	if c.currentElapsed() != 90*time.Second {
		t.Fatalf("expected 90s, got %v", c.currentElapsed())
	}

	c.stop()
	if c.running || c.currentElapsed() != 0 {
		t.Fatal("clock should be stopped and reset")
	}
}

func TestToastExpires(t *testing.T) {
	now := time.Now()
	tt := newToast("Saved", false, now)
	if !tt.visible(now) {
		t.Fatal("fresh toast should be visible")
	}
	if tt.visible(now.Add(toastTTL)) {
		t.Fatal("toast should expire after its TTL")
	}
	if (toast{}).visible(now) {
		t.Fatal("empty toast is never visible")
	}
}

// ============================================================
// Home
// ============================================================

func TestHomeStartPractice(t *testing.T) {
	tr := newTestTracker(t, "Alex", "Blake")
	h := newHomeModel(tr)

	h, cmd := h.update(press("p"))
	if tr.State() != session.InProgress {
		t.Fatal("p should start a session")
	}
	r, _ := tr.Active()
	if r.Type != session.Practice {
		t.Fatalf("expected Practice, got %s", r.Type)
	}
	if !navigatesTo(collect(cmd), viewTracking) {
		t.Fatal("starting should open the tracking view")
	}
}

func TestHomeStartWhileInProgressOffersResume(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	h := newHomeModel(tr)
	h, _ = h.update(press("g"))

	_, cmd := h.update(press("p"))
	if !strings.Contains(statusText(collect(cmd)), "resume") {
		t.Fatal("second start should point at resume")
	}
	r, _ := tr.Active()
	if r.Type != session.Game {
		t.Fatal("the game in progress must not be replaced")
	}
}

func TestHomeResumeWithoutSession(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	h := newHomeModel(tr)

	_, cmd := h.update(press("r"))
	msgs := collect(cmd)
	if navigatesTo(msgs, viewTracking) {
		t.Fatal("resume without a session must stay home")
	}
}

// ============================================================
// Tracking
// ============================================================

func TestTrackingMarkAndUndo(t *testing.T) {
	tr := newTestTracker(t, "Alex", "Blake")
	tr.StartSession(session.Practice)

	m := newTrackingModel(tr)
	m.setSize(120, 40)
	m, _ = m.update(press("enter"))
	if m.selected != "Alex" {
		t.Fatalf("expected Alex selected, got %q", m.selected)
	}

	m, _ = m.update(press("+"))
	m, _ = m.update(press("+"))
	m, _ = m.update(press("-"))
	r, _ := tr.Active()
	if got := session.CategoryTotal(r, "Alex", markable[0]); got != 1 {
		t.Fatalf("expected %s total 1, got %d", markable[0], got)
	}

	m, _ = m.update(press("u"))
	r, _ = tr.Active()
	if got := session.CategoryTotal(r, "Alex", markable[0]); got != 2 {
		t.Fatalf("undo should drop the last mark, got %d", got)
	}

	// Only one step of undo.
	_, cmd := m.update(press("u"))
	if statusText(collect(cmd)) != "Nothing to undo" {
		t.Fatal("second undo should be a no-op")
	}
}

func TestTrackingMarkableExcludesAttendance(t *testing.T) {
	for _, c := range markable {
		if c == session.Attendance {
			t.Fatal("attendance is toggled, not marked")
		}
	}
	if len(markable) != len(session.Categories())-1 {
		t.Fatalf("unexpected markable count %d", len(markable))
	}
}

func TestTrackingSaveEndsSession(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Game)

	m := newTrackingModel(tr)
	_, cmd := m.update(press("S"))
	msgs := collect(cmd)

	if tr.State() != session.Absent {
		t.Fatal("save should end the session")
	}
	if len(tr.Sessions()) != 1 {
		t.Fatal("ended session should be archived")
	}
	if !navigatesTo(msgs, viewHome) {
		t.Fatal("save should return home")
	}
}

// ============================================================
// Attendance
// ============================================================

func TestAttendanceToggle(t *testing.T) {
	tr := newTestTracker(t, "Alex", "Blake")
	tr.StartSession(session.Practice)

	m := newAttendanceModel(tr)
	m, _ = m.update(press("j"))
	m, _ = m.update(press("enter"))

	r, _ := tr.Active()
	if session.IsPresent(r, "Alex") || !session.IsPresent(r, "Blake") {
		t.Fatal("only Blake should be present")
	}

	m.update(press(" "))
	r, _ = tr.Active()
	if session.IsPresent(r, "Blake") {
		t.Fatal("space should toggle Blake back to absent")
	}
}

// ============================================================
// Review
// ============================================================

func TestReviewViewShowsTotals(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Practice)
	tr.RecordMark("Alex", "Hustle", 1)
	tr.SetNote("Alex", "great ground balls")

	m := newReviewModel(tr)
	m.setSize(120, 40)
	out := m.view()
	for _, want := range []string{"Alex", "+1", "great ground balls"} {
		if !strings.Contains(out, want) {
			t.Fatalf("review view missing %q", want)
		}
	}
}

func TestReviewOpensNoteForm(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Practice)
	tr.SetNote("Alex", "existing")

	m := newReviewModel(tr)
	m, _ = m.update(press("enter"))
	if !m.formActive {
		t.Fatal("enter should open the note form")
	}
	if *m.noteText != "existing" {
		t.Fatalf("form should start from the current note, got %q", *m.noteText)
	}

	m, _ = m.update(press("esc"))
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Roster
// ============================================================

func TestRosterAddAndRemove(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	m := newRosterModel(tr)

	m, _ = m.update(press("n"))
	if got := tr.Players(); len(got) != 2 || got[1] != "Player 2" {
		t.Fatalf("unexpected roster %v", got)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor should follow the new player, got %d", m.cursor)
	}

	m, _ = m.update(press("d"))
	if got := tr.Players(); len(got) != 1 || got[0] != "Alex" {
		t.Fatalf("unexpected roster %v", got)
	}

	_, cmd := m.update(press("d"))
	if len(tr.Players()) != 1 {
		t.Fatal("the last player must not be removed")
	}
	if !strings.Contains(statusText(collect(cmd)), "at least one") {
		t.Fatal("refusal should be reported")
	}
}

func TestRosterRenameForm(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	m := newRosterModel(tr)

	m, _ = m.update(press("enter"))
	if !m.formActive || *m.formName != "Alex" {
		t.Fatal("enter should open a rename form seeded with the name")
	}
}

// ============================================================
// History
// ============================================================

func TestHistoryMostRecentFirst(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Practice)
	tr.EndSession()
	tr.StartSession(session.Game)
	tr.EndSession()

	m := newHistoryModel(tr)
	if len(m.sessions) != 2 || m.sessions[0].Type != session.Game {
		t.Fatal("history should list the newest session first")
	}
}

func TestHistoryDeleteSession(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Practice)
	tr.RecordMark("Alex", "Hustle", 1)
	tr.EndSession()

	m := newHistoryModel(tr)
	m.setSize(120, 40)
	m, _ = m.update(press("enter"))
	if m.detail == nil {
		t.Fatal("enter should open the session")
	}
	if !strings.Contains(m.view(), "Alex") {
		t.Fatal("detail should list tracked players")
	}

	m, _ = m.update(press("d"))
	if m.detail != nil || len(m.sessions) != 0 || len(tr.Sessions()) != 0 {
		t.Fatal("session should be deleted")
	}
}

func TestHistoryExportSession(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Practice)
	tr.RecordMark("Alex", "Hustle", 1)
	tr.EndSession()

	m := newHistoryModel(tr)
	m, _ = m.update(press("enter"))
	_, cmd := m.update(press("e"))

	msgs := collect(cmd)
	done, ok := msgs[0].(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %T", msgs[0])
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}
}

func TestMarkCounts(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Practice)
	tr.RecordMark("Alex", "Hustle", 1)
	tr.RecordMark("Alex", "Humility", 1)
	tr.RecordMark("Alex", "Hustle", -1)
	tr.SetAttendance("Alex", true)
	r, _ := tr.Active()

	plus, minus := markCounts(r, "Alex")
	if plus != 2 || minus != 1 {
		t.Fatalf("expected 2/1, got %d/%d", plus, minus)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := NewApp(newTestTracker(t))

	if app.activeView != viewHome {
		t.Fatal("default view should be home")
	}
	if app.showHelp || app.exportPicking {
		t.Fatal("help and export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	app := NewApp(newTestTracker(t))
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppViewStates(t *testing.T) {
	tr := newTestTracker(t, "Alex", "Blake")
	tr.StartSession(session.Practice)
	app := NewApp(tr)
	app.width = 120
	app.height = 40

	for _, v := range []viewState{viewHome, viewTracking, viewAttendance, viewReview, viewHistory, viewRoster} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %s rendered empty", viewNames[v])
		}
	}
}

func TestAppRefusesTrackingWithoutSession(t *testing.T) {
	app := NewApp(newTestTracker(t))

	app = app.switchTo(viewTracking)
	if app.activeView != viewHome {
		t.Fatal("tracking needs a session in progress")
	}
}

func TestAppNavigate(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Game)
	app := NewApp(tr)

	model, _ := app.Update(navigateMsg{view: viewReview})
	app = model.(App)
	if app.activeView != viewReview {
		t.Fatalf("expected review, got %s", viewNames[app.activeView])
	}
	if app.tabOf(app.activeView) != viewTracking {
		t.Fatal("review belongs to the Track tab")
	}
}

func TestAppNextTabSkipsTrackingWhenIdle(t *testing.T) {
	app := NewApp(newTestTracker(t))
	if got := app.nextTab(); got != viewHistory {
		t.Fatalf("expected history, got %s", viewNames[got])
	}
}

func TestAppStatusMessageInFooter(t *testing.T) {
	app := NewApp(newTestTracker(t))
	app.width = 120
	app.height = 40

	model, _ := app.Update(statusMsg{text: "test status"})
	app = model.(App)
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppRenderHeaderContainsTabs(t *testing.T) {
	app := NewApp(newTestTracker(t))
	app.width = 120

	header := app.renderHeader()
	for _, v := range tabs {
		if !strings.Contains(header, viewNames[v]) {
			t.Fatalf("header missing tab %q", viewNames[v])
		}
	}
}

func TestAppExportPicker(t *testing.T) {
	tr := newTestTracker(t, "Alex")
	tr.StartSession(session.Practice)
	tr.RecordMark("Alex", "Hustle", 1)
	tr.EndSession()
	app := NewApp(tr)

	model, _ := app.Update(press("E"))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("E should open the export picker")
	}

	model, _ = app.Update(press("j"))
	app = model.(App)
	model, cmd := app.Update(press("enter"))
	app = model.(App)
	if app.exportPicking {
		t.Fatal("picker should close after choosing")
	}

	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("export should succeed")
	}
	if !strings.HasSuffix(done.path, ".json") {
		t.Fatalf("second option should export JSON, got %s", done.path)
	}
}

func TestAppExportEmptyArchive(t *testing.T) {
	app := NewApp(newTestTracker(t))

	msg := app.doExport(0)()
	s, ok := msg.(statusMsg)
	if !ok || !s.isError {
		t.Fatal("exporting nothing should report an error")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles
// ============================================================

func TestGroupStyleUnknownCategory(t *testing.T) {
	if groupStyle("Nope").Render("x") == "" {
		t.Fatal("unknown categories still render")
	}
	if badge(session.Game) == "" || badge(session.Practice) == "" {
		t.Fatal("badges should render")
	}
}
