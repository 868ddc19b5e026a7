// Package session holds the scoring model: session records, the engine that
// owns the single in-progress session, and the archive of finished ones.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// State of the active session slot.
type State int

const (
	Absent State = iota
	InProgress
)

func (s State) String() string {
	if s == InProgress {
		return "in progress"
	}
	return "absent"
}

// Action is the most recent mark, kept for a single undo.
type Action struct {
	Player   string
	Category string
	Delta    int
	At       time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs overrides session id generation.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithActive restores a previously persisted in-progress session.
func WithActive(r *Record) Option {
	return func(e *Engine) {
		if r != nil {
			e.active = r.Clone()
			e.normalize()
		}
	}
}

// Engine owns the active session slot. Finished sessions go to the archive
// it was created with. Not safe for concurrent use.
type Engine struct {
	archive *Archive
	active  *Record
	last    *Action

	now   func() time.Time
	newID func() string
}

func NewEngine(archive *Archive, opts ...Option) *Engine {
	if archive == nil {
		archive = NewArchive(nil)
	}
	e := &Engine{
		archive: archive,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() State {
	if e.active == nil {
		return Absent
	}
	return InProgress
}

// Active returns the in-progress record. Callers must not mutate it.
func (e *Engine) Active() (*Record, bool) {
	return e.active, e.active != nil
}

// Archive returns the archive finished sessions are moved to.
func (e *Engine) Archive() *Archive { return e.archive }

// Start opens a new session. Starting while another is in progress is
// rejected; the caller should resume it instead.
func (e *Engine) Start(kind Kind) (*Record, error) {
	if e.active != nil {
		return nil, ErrSessionInProgress
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	e.active = newRecord(e.newID(), kind, e.now())
	e.last = nil
	return e.active, nil
}

// Resume returns the in-progress session.
func (e *Engine) Resume() (*Record, error) {
	if e.active == nil {
		return nil, ErrNoActiveSession
	}
	return e.active, nil
}

// RecordMark appends a +1 or -1 event and makes it the undoable action.
func (e *Engine) RecordMark(player, category string, delta int) error {
	if e.active == nil {
		return ErrNoActiveSession
	}
	if strings.TrimSpace(player) == "" {
		return ErrEmptyPlayer
	}
	if delta != 1 && delta != -1 {
		return ErrInvalidDelta
	}
	if category == Attendance {
		return ErrReservedCategory
	}
	if !IsCategory(category) {
		return ErrUnknownCategory
	}
	cats := e.playerMarks(player)
	cats[category] = append(cats[category], delta)
	e.last = &Action{Player: player, Category: category, Delta: delta, At: e.now()}
	return nil
}

// LastAction returns the mark UndoLast would remove.
func (e *Engine) LastAction() (Action, bool) {
	if e.last == nil {
		return Action{}, false
	}
	return *e.last, true
}

// UndoLast removes the most recent mark. Only one mark can be undone; a
// second call without a new mark is a no-op.
func (e *Engine) UndoLast() bool {
	if e.active == nil || e.last == nil {
		return false
	}
	list := e.active.Marks[e.last.Player][e.last.Category]
	if len(list) == 0 {
		return false
	}
	e.active.Marks[e.last.Player][e.last.Category] = list[:len(list)-1]
	e.last = nil
	return true
}

// SetAttendance replaces the attendance list: [1] when present, empty
// otherwise. Calling it repeatedly is idempotent.
func (e *Engine) SetAttendance(player string, present bool) error {
	if e.active == nil {
		return ErrNoActiveSession
	}
	if strings.TrimSpace(player) == "" {
		return ErrEmptyPlayer
	}
	cats := e.playerMarks(player)
	if present {
		cats[Attendance] = []int{1}
	} else {
		cats[Attendance] = []int{}
	}
	return nil
}

// ToggleAttendance flips attendance and returns the new state.
func (e *Engine) ToggleAttendance(player string) (bool, error) {
	present := !IsPresent(e.active, player)
	if err := e.SetAttendance(player, present); err != nil {
		return false, err
	}
	return present, nil
}

// SetNote replaces the player's note.
func (e *Engine) SetNote(player, text string) error {
	if e.active == nil {
		return ErrNoActiveSession
	}
	if strings.TrimSpace(player) == "" {
		return ErrEmptyPlayer
	}
	e.active.Notes[player] = text
	return nil
}

// End archives the active session and empties the slot.
func (e *Engine) End() (*Record, error) {
	if e.active == nil {
		return nil, ErrNoActiveSession
	}
	done := e.active
	e.archive.Add(done)
	e.active = nil
	e.last = nil
	return done, nil
}

func (e *Engine) playerMarks(player string) map[string][]int {
	cats, ok := e.active.Marks[player]
	if !ok || cats == nil {
		cats = make(map[string][]int)
		e.active.Marks[player] = cats
	}
	return cats
}

// normalize fills maps that may be missing from older persisted records.
func (e *Engine) normalize() {
	if e.active.Marks == nil {
		e.active.Marks = make(map[string]map[string][]int)
	}
	if e.active.Notes == nil {
		e.active.Notes = make(map[string]string)
	}
}
