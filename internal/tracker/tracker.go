// Package tracker is the entry point for the UI and CLI: it wires the
// roster, the session engine and the archive to durable storage, writing
// through after every mutation.
package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sadopc/laxtime/internal/export"
	"github.com/sadopc/laxtime/internal/logger"
	"github.com/sadopc/laxtime/internal/roster"
	"github.com/sadopc/laxtime/internal/session"
	"github.com/sadopc/laxtime/internal/store"
)

// Option configures a Tracker.
type Option func(*options)

type options struct {
	log       *slog.Logger
	players   []string
	exportDir string
	now       func() time.Time
	engine    []session.Option
}

// WithLogger sets the logger used to report storage problems.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithDefaultPlayers seeds the roster when nothing is stored yet.
func WithDefaultPlayers(names []string) Option {
	return func(o *options) { o.players = names }
}

// WithExportDir sets where export files are written.
func WithExportDir(dir string) Option {
	return func(o *options) { o.exportDir = dir }
}

// WithClock overrides the time source for sessions and export names.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
		o.engine = append(o.engine, session.WithClock(now))
	}
}

// WithEngineOptions passes options through to the session engine.
func WithEngineOptions(opts ...session.Option) Option {
	return func(o *options) { o.engine = append(o.engine, opts...) }
}

// Tracker is not safe for concurrent use; events are applied one at a time.
type Tracker struct {
	gw        *store.Gateway
	log       *slog.Logger
	roster    *roster.Roster
	engine    *session.Engine
	exportDir string
	now       func() time.Time
}

// Open restores roster, history and any in-progress session from gw.
// Missing or corrupt values start fresh; Open itself never fails.
func Open(gw *store.Gateway, opts ...Option) *Tracker {
	o := options{
		log:       logger.Discard(),
		exportDir: ".",
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	t := &Tracker{
		gw:        gw,
		log:       logger.Named(o.log, "tracker"),
		exportDir: o.exportDir,
		now:       o.now,
	}

	players, out := store.Load(gw, store.KeyPlayers, []string(nil))
	t.report(out)
	if len(players) == 0 {
		players = o.players
	}
	t.roster = roster.New(players)

	records, out := store.Load(gw, store.KeySessions, []*session.Record(nil))
	t.report(out)
	archive := session.NewArchive(records)

	active, out := store.Load(gw, store.KeyActiveSession, (*session.Record)(nil))
	t.report(out)
	engineOpts := append([]session.Option{session.WithActive(active)}, o.engine...)
	t.engine = session.NewEngine(archive, engineOpts...)

	t.log.Info("restored state",
		slog.Int("players", t.roster.Len()),
		slog.Int("sessions", archive.Len()),
		slog.Bool("active", active != nil),
	)
	return t
}

// report logs failed storage operations. Failures never reach the caller.
func (t *Tracker) report(out store.Outcome) {
	if out.OK() {
		return
	}
	t.log.Warn("storage operation failed",
		slog.String("op", out.Op),
		slog.String("key", string(out.Key)),
		slog.Bool("fallback", out.Fallback),
		slog.Any("error", out.Err),
	)
}

func (t *Tracker) saveRoster() {
	t.report(t.gw.Save(store.KeyPlayers, t.roster.Names()))
}

func (t *Tracker) saveArchive() {
	t.report(t.gw.Save(store.KeySessions, t.engine.Archive().Records()))
}

func (t *Tracker) saveActive() {
	if r, ok := t.engine.Active(); ok {
		t.report(t.gw.Save(store.KeyActiveSession, r))
		return
	}
	t.report(t.gw.Clear(store.KeyActiveSession))
}

// ============================================================
// Roster
// ============================================================

func (t *Tracker) Players() []string { return t.roster.Names() }

func (t *Tracker) AddPlayer() string {
	name := t.roster.Add()
	t.saveRoster()
	return name
}

func (t *Tracker) RenamePlayer(index int, name string) bool {
	if !t.roster.Rename(index, name) {
		return false
	}
	t.saveRoster()
	return true
}

func (t *Tracker) RemovePlayer(index int) bool {
	if !t.roster.Remove(index) {
		return false
	}
	t.saveRoster()
	return true
}

// ============================================================
// Active session
// ============================================================

func (t *Tracker) State() session.State { return t.engine.State() }

// Active returns a copy of the in-progress session.
func (t *Tracker) Active() (*session.Record, bool) {
	r, ok := t.engine.Active()
	return r.Clone(), ok
}

func (t *Tracker) StartSession(kind session.Kind) (*session.Record, error) {
	r, err := t.engine.Start(kind)
	if err != nil {
		return nil, err
	}
	t.saveActive()
	t.log.Info("session started", slog.String("id", r.ID), slog.String("type", string(r.Type)))
	return r.Clone(), nil
}

func (t *Tracker) ResumeSession() (*session.Record, error) {
	r, err := t.engine.Resume()
	if err != nil {
		return nil, err
	}
	return r.Clone(), nil
}

func (t *Tracker) RecordMark(player, category string, delta int) error {
	if err := t.engine.RecordMark(player, category, delta); err != nil {
		return err
	}
	t.saveActive()
	return nil
}

func (t *Tracker) LastAction() (session.Action, bool) { return t.engine.LastAction() }

func (t *Tracker) UndoLast() bool {
	if !t.engine.UndoLast() {
		return false
	}
	t.saveActive()
	return true
}

func (t *Tracker) SetAttendance(player string, present bool) error {
	if err := t.engine.SetAttendance(player, present); err != nil {
		return err
	}
	t.saveActive()
	return nil
}

func (t *Tracker) ToggleAttendance(player string) (bool, error) {
	present, err := t.engine.ToggleAttendance(player)
	if err != nil {
		return false, err
	}
	t.saveActive()
	return present, nil
}

func (t *Tracker) SetNote(player, text string) error {
	if err := t.engine.SetNote(player, text); err != nil {
		return err
	}
	t.saveActive()
	return nil
}

// EndSession archives the active session. The archive is written before the
// active slot is cleared so a crash in between cannot lose the session.
func (t *Tracker) EndSession() (*session.Record, error) {
	r, err := t.engine.End()
	if err != nil {
		return nil, err
	}
	t.saveArchive()
	t.saveActive()
	t.log.Info("session saved", slog.String("id", r.ID))
	return r.Clone(), nil
}

// ============================================================
// History
// ============================================================

// Sessions returns the archive oldest first.
func (t *Tracker) Sessions() []*session.Record { return t.engine.Archive().Records() }

func (t *Tracker) Session(id string) (*session.Record, bool) { return t.engine.Archive().Get(id) }

// DeleteSession removes an archived session. Unknown ids are a no-op.
func (t *Tracker) DeleteSession(id string) bool {
	if !t.engine.Archive().Remove(id) {
		return false
	}
	t.saveArchive()
	t.log.Info("session deleted", slog.String("id", id))
	return true
}

// ============================================================
// Derivations
// ============================================================

func (t *Tracker) Total(r *session.Record, player string) int { return session.Total(r, player) }

func (t *Tracker) CategoryTotal(r *session.Record, player, category string) int {
	return session.CategoryTotal(r, player, category)
}

func (t *Tracker) IsPresent(r *session.Record, player string) bool {
	return session.IsPresent(r, player)
}

// ============================================================
// Export
// ============================================================

// ExportSession writes an archived or in-progress session as CSV and
// returns the file path.
func (t *Tracker) ExportSession(id string) (string, error) {
	r, ok := t.Session(id)
	if !ok {
		if a, active := t.engine.Active(); active && a.ID == id {
			r = a
		} else {
			return "", fmt.Errorf("export session %q: %w", id, ErrSessionNotFound)
		}
	}
	data, err := export.SessionCSV(r, t.roster.Names())
	if err != nil {
		return "", fmt.Errorf("render session %q: %w", id, err)
	}
	return t.write(export.SessionFilename(r), data)
}

// ExportArchive writes every archived session into one CSV file.
func (t *Tracker) ExportArchive() (string, error) {
	records := t.Sessions()
	if len(records) == 0 {
		return "", ErrNothingToExport
	}
	data, err := export.ArchiveCSV(records, t.roster.Names())
	if err != nil {
		return "", fmt.Errorf("render archive: %w", err)
	}
	return t.write(export.ArchiveFilename(t.now()), data)
}

// ExportArchiveJSON writes every archived session as a JSON backup.
func (t *Tracker) ExportArchiveJSON() (string, error) {
	records := t.Sessions()
	if len(records) == 0 {
		return "", ErrNothingToExport
	}
	data, err := export.ArchiveJSON(records, t.roster.Names(), t.now())
	if err != nil {
		return "", err
	}
	return t.write(export.ArchiveJSONFilename(t.now()), data)
}

func (t *Tracker) write(name string, data []byte) (string, error) {
	path, err := export.ToFile(t.exportDir, name, data)
	if err != nil {
		return "", err
	}
	t.log.Info("exported", slog.String("path", path))
	return path, nil
}
