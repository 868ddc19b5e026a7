package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/laxtime/internal/session"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Date    string       `json:"date"`
	Players []jsonPlayer `json:"players"`
}

type jsonPlayer struct {
	Name       string         `json:"name"`
	Present    bool           `json:"present"`
	Categories map[string]int `json:"categories"`
	Total      int            `json:"total"`
	Notes      string         `json:"notes,omitempty"`
}

// ArchiveJSONFilename is all_sessions_{YYYY-MM-DD}.json for the export date.
func ArchiveJSONFilename(now time.Time) string {
	return fmt.Sprintf("all_sessions_%s.json", now.UTC().Format(time.DateOnly))
}

// ArchiveJSON renders every session with derived per-player totals. Player
// inclusion follows the CSV export.
func ArchiveJSON(records []*session.Record, roster []string, now time.Time) ([]byte, error) {
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(records),
		Sessions:   []jsonSession{},
	}

	for _, r := range records {
		js := jsonSession{
			ID:      r.ID,
			Type:    string(r.Type),
			Date:    r.Date.UTC().Format(time.RFC3339),
			Players: []jsonPlayer{},
		}
		for _, p := range Players(r, roster) {
			cats := make(map[string]int)
			for _, c := range session.Categories() {
				if v := session.CategoryTotal(r, p, c); v != 0 {
					cats[c] = v
				}
			}
			js.Players = append(js.Players, jsonPlayer{
				Name:       p,
				Present:    session.IsPresent(r, p),
				Categories: cats,
				Total:      session.Total(r, p),
				Notes:      r.Notes[p],
			})
		}
		export.Sessions = append(export.Sessions, js)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}
