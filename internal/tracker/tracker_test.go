package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/store"
)

var testNow = time.Date(2026, 10, 15, 16, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func openTracker(t *testing.T, b store.Backend, players ...string) *Tracker {
	t.Helper()
	n := 0
	return Open(store.NewGateway(b),
		WithDefaultPlayers(players),
		WithExportDir(t.TempDir()),
		WithClock(func() time.Time { return testNow }),
		WithEngineOptions(session.WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		})),
	)
}

// brokenBackend accepts reads of nothing and rejects every write.
type brokenBackend struct{ writes int }

func (b *brokenBackend) Get(string) (string, bool, error) { return "", false, nil }
func (b *brokenBackend) Put(string, string) error {
	b.writes++
	return errors.New("disk full")
}
func (b *brokenBackend) Delete(string) error {
	b.writes++
	return errors.New("disk full")
}

// ============================================================
// Restore
// ============================================================

func TestOpenFresh(t *testing.T) {
	tr := openTracker(t, newTestStore(t), "A", "B")
	if !reflect.DeepEqual(tr.Players(), []string{"A", "B"}) {
		t.Fatalf("players = %v", tr.Players())
	}
	if tr.State() != session.Absent || len(tr.Sessions()) != 0 {
		t.Fatal("fresh tracker should be empty")
	}
}

func TestOpenFreshUsesBuiltInRoster(t *testing.T) {
	tr := openTracker(t, newTestStore(t))
	if len(tr.Players()) != 16 {
		t.Fatalf("players = %d, want built-in roster", len(tr.Players()))
	}
}

func TestOpenCorruptState(t *testing.T) {
	s := newTestStore(t)
	s.Put(string(store.KeyPlayers), "not json")
	s.Put(string(store.KeySessions), `{"broken":`)
	s.Put(string(store.KeyActiveSession), "[1,2]")

	tr := openTracker(t, s, "Fallback")
	if !reflect.DeepEqual(tr.Players(), []string{"Fallback"}) {
		t.Fatalf("players = %v", tr.Players())
	}
	if tr.State() != session.Absent || len(tr.Sessions()) != 0 {
		t.Fatal("corrupt state should load as empty")
	}
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, "A", "B")
	tr.RenamePlayer(1, "Bee")
	tr.AddPlayer()

	tr.StartSession(session.Game)
	tr.RecordMark("A", "Hustle", 1)
	tr.SetNote("Bee", `great "hands"`)
	tr.EndSession()

	tr.StartSession(session.Practice)
	tr.RecordMark("A", "Intensity", -1)
	tr.RecordMark("A", "Intensity", 1)
	tr.UndoLast()
	tr.SetAttendance("Bee", true)
	tr.SetAttendance("A", false)

	reopened := openTracker(t, s, "ignored")
	if !reflect.DeepEqual(reopened.Players(), tr.Players()) {
		t.Fatalf("players: %v vs %v", reopened.Players(), tr.Players())
	}
	if !reflect.DeepEqual(reopened.Sessions(), tr.Sessions()) {
		t.Fatalf("sessions differ:\n%+v\n%+v", reopened.Sessions(), tr.Sessions())
	}
	a1, _ := tr.Active()
	a2, ok := reopened.Active()
	if !ok || !reflect.DeepEqual(a1, a2) {
		t.Fatalf("active differs:\n%+v\n%+v", a1, a2)
	}
}

func TestResumeAfterRestart(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, "A")
	started, _ := tr.StartSession(session.Practice)
	tr.RecordMark("A", "Hustle", 1)

	reopened := openTracker(t, s, "A")
	r, err := reopened.ResumeSession()
	if err != nil {
		t.Fatal(err)
	}
	if r.ID != started.ID || session.Total(r, "A") != 1 {
		t.Fatalf("resumed %+v", r)
	}
	if _, err := reopened.StartSession(session.Game); !errors.Is(err, session.ErrSessionInProgress) {
		t.Fatalf("start over a restored session: %v", err)
	}
}

func TestEndSessionClearsStoredActive(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, "A")
	tr.StartSession(session.Practice)
	if _, ok, _ := s.Get(string(store.KeyActiveSession)); !ok {
		t.Fatal("active session should be stored")
	}
	tr.EndSession()
	if _, ok, _ := s.Get(string(store.KeyActiveSession)); ok {
		t.Fatal("active session should be cleared after end")
	}
}

// ============================================================
// Degraded storage
// ============================================================

func TestStorageFailuresAreSwallowed(t *testing.T) {
	b := &brokenBackend{}
	tr := openTracker(t, b, "A", "B")

	if _, err := tr.StartSession(session.Game); err != nil {
		t.Fatalf("start should succeed in memory: %v", err)
	}
	if err := tr.RecordMark("A", "Hustle", 1); err != nil {
		t.Fatal(err)
	}
	tr.AddPlayer()
	if _, err := tr.EndSession(); err != nil {
		t.Fatal(err)
	}
	if len(tr.Sessions()) != 1 || len(tr.Players()) != 3 {
		t.Fatal("in-memory state remains the source of truth")
	}
	if b.writes == 0 {
		t.Fatal("writes should have been attempted")
	}
}

// ============================================================
// Operations
// ============================================================

func TestScenario(t *testing.T) {
	tr := openTracker(t, newTestStore(t), "A", "B")
	r, err := tr.StartSession(session.Practice)
	if err != nil {
		t.Fatal(err)
	}
	tr.RecordMark("A", "Hustle", 1)
	tr.RecordMark("A", "Hustle", 1)
	tr.RecordMark("A", "Humility", -1)

	active, _ := tr.Active()
	if tr.CategoryTotal(active, "A", "Hustle") != 2 || tr.Total(active, "A") != 1 {
		t.Fatal("unexpected totals")
	}

	tr.EndSession()
	sessions := tr.Sessions()
	if len(sessions) != 1 || sessions[0].ID != r.ID {
		t.Fatalf("sessions = %+v", sessions)
	}
	if tr.Total(sessions[0], "A") != 1 {
		t.Fatal("archived total should still be 1")
	}
}

func TestActiveReturnsCopy(t *testing.T) {
	tr := openTracker(t, newTestStore(t), "A")
	tr.StartSession(session.Practice)
	a, _ := tr.Active()
	a.Notes["A"] = "sneaky"
	b, _ := tr.Active()
	if b.Notes["A"] != "" {
		t.Fatal("Active must not expose the engine's record")
	}
}

func TestMutationsWithoutSession(t *testing.T) {
	tr := openTracker(t, newTestStore(t), "A")
	if err := tr.RecordMark("A", "Hustle", 1); !errors.Is(err, session.ErrNoActiveSession) {
		t.Fatalf("err = %v", err)
	}
	if _, err := tr.EndSession(); !errors.Is(err, session.ErrNoActiveSession) {
		t.Fatalf("err = %v", err)
	}
	if _, err := tr.ResumeSession(); !errors.Is(err, session.ErrNoActiveSession) {
		t.Fatalf("err = %v", err)
	}
	if tr.UndoLast() {
		t.Fatal("undo should be a no-op")
	}
}

func TestAttendance(t *testing.T) {
	tr := openTracker(t, newTestStore(t), "A")
	tr.StartSession(session.Practice)
	tr.SetAttendance("A", true)
	tr.SetAttendance("A", true)
	a, _ := tr.Active()
	if !reflect.DeepEqual(a.Marks["A"][session.Attendance], []int{1}) || !tr.IsPresent(a, "A") {
		t.Fatalf("attendance = %v", a.Marks["A"][session.Attendance])
	}
	present, err := tr.ToggleAttendance("A")
	if err != nil || present {
		t.Fatalf("toggle = %v, %v", present, err)
	}
	if err := tr.RecordMark("A", session.Attendance, 1); !errors.Is(err, session.ErrReservedCategory) {
		t.Fatalf("raw attendance mark err = %v", err)
	}
}

func TestRosterOperations(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, "Solo")
	if tr.RemovePlayer(0) {
		t.Fatal("cannot remove the last player")
	}
	if tr.RenamePlayer(0, "") {
		t.Fatal("blank rename is a no-op")
	}
	tr.AddPlayer()
	if !tr.RemovePlayer(0) {
		t.Fatal("remove should succeed with two players")
	}
	if got := openTracker(t, s).Players(); !reflect.DeepEqual(got, []string{"Player 2"}) {
		t.Fatalf("persisted players = %v", got)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, "A")
	r, _ := tr.StartSession(session.Game)
	tr.EndSession()

	if !tr.DeleteSession(r.ID) {
		t.Fatal("delete should succeed")
	}
	if tr.DeleteSession(r.ID) {
		t.Fatal("second delete should be a no-op")
	}
	if len(openTracker(t, s).Sessions()) != 0 {
		t.Fatal("deletion should be persisted")
	}
}

// ============================================================
// Export
// ============================================================

func TestExportSession(t *testing.T) {
	tr := openTracker(t, newTestStore(t), "A", "B")
	r, _ := tr.StartSession(session.Game)
	tr.RecordMark("B", "Bar Raiser", 1)

	// In-progress sessions can be exported too.
	path, err := tr.ExportSession(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "Game_2026-10-15.csv" {
		t.Fatalf("path = %q", path)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\nB,") || strings.Contains(string(data), "\nA,") {
		t.Fatalf("unexpected export:\n%s", data)
	}

	tr.EndSession()
	if _, err := tr.ExportSession(r.ID); err != nil {
		t.Fatalf("archived export: %v", err)
	}
	if _, err := tr.ExportSession("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestExportArchive(t *testing.T) {
	tr := openTracker(t, newTestStore(t), "A")
	if _, err := tr.ExportArchive(); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("err = %v", err)
	}
	if _, err := tr.ExportArchiveJSON(); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("err = %v", err)
	}

	tr.StartSession(session.Practice)
	tr.SetNote("A", "solid")
	tr.EndSession()

	path, err := tr.ExportArchive()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "all_sessions_2026-10-15.csv" {
		t.Fatalf("path = %q", path)
	}
	jpath, err := tr.ExportArchiveJSON()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(jpath) != "all_sessions_2026-10-15.json" {
		t.Fatalf("json path = %q", jpath)
	}
}
