package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/laxtime/internal/session"
)

// SessionFilename is {type}_{YYYY-MM-DD}.csv, using the session's UTC date.
func SessionFilename(r *session.Record) string {
	return fmt.Sprintf("%s_%s.csv", r.Type, r.Date.UTC().Format(time.DateOnly))
}

// ArchiveFilename is all_sessions_{YYYY-MM-DD}.csv for the export date.
func ArchiveFilename(now time.Time) string {
	return fmt.Sprintf("all_sessions_%s.csv", now.UTC().Format(time.DateOnly))
}

// Header returns the per-player columns shared by both exports.
func Header() []string {
	h := []string{"Player"}
	h = append(h, session.Categories()...)
	return append(h, "Total", "Notes")
}

// Players lists who gets a row for r: roster order first (duplicates
// collapsed), then names only the record knows about, sorted. Players
// without a mark or a note are left out.
func Players(r *session.Record, roster []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range roster {
		if seen[p] {
			continue
		}
		seen[p] = true
		if session.HasActivity(r, p) {
			out = append(out, p)
		}
	}

	var extra []string
	for p := range r.Marks {
		if !seen[p] && session.HasActivity(r, p) {
			seen[p] = true
			extra = append(extra, p)
		}
	}
	for p := range r.Notes {
		if !seen[p] && session.HasActivity(r, p) {
			seen[p] = true
			extra = append(extra, p)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// WriteSession writes one session: a title line, the header, then one row
// per included player.
func WriteSession(w io.Writer, r *session.Record, roster []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", r.Type, displayDate(r.Date))
	b.WriteString(strings.Join(Header(), ","))
	b.WriteByte('\n')
	for _, p := range Players(r, roster) {
		b.WriteString(strings.Join(row(r, p), ","))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteArchive writes every session flattened into one table, prefixed with
// Date and Type columns, in archive order.
func WriteArchive(w io.Writer, records []*session.Record, roster []string) error {
	var b strings.Builder
	b.WriteString(strings.Join(append([]string{"Date", "Type"}, Header()...), ","))
	b.WriteByte('\n')
	for _, r := range records {
		date := displayDate(r.Date)
		for _, p := range Players(r, roster) {
			fields := append([]string{date, string(r.Type)}, row(r, p)...)
			b.WriteString(strings.Join(fields, ","))
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SessionCSV renders a single session export in memory.
func SessionCSV(r *session.Record, roster []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSession(&buf, r, roster); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ArchiveCSV renders the whole-archive export in memory.
func ArchiveCSV(records []*session.Record, roster []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, records, roster); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToFile writes data to dir/name and returns the full path.
func ToFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

func row(r *session.Record, player string) []string {
	fields := []string{field(player)}
	for _, c := range session.Categories() {
		fields = append(fields, strconv.Itoa(session.CategoryTotal(r, player, c)))
	}
	fields = append(fields, strconv.Itoa(session.Total(r, player)))
	return append(fields, quote(r.Notes[player]))
}

// quote always wraps the field and doubles embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// field quotes a value only when it would otherwise break the row.
func field(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

func displayDate(t time.Time) string {
	return t.Local().Format(time.DateOnly)
}
