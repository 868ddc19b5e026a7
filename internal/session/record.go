package session

import (
	"fmt"
	"time"
)

// Kind is the session type, fixed at creation.
type Kind string

const (
	Practice Kind = "Practice"
	Game     Kind = "Game"
)

// ParseKind accepts the session type case-sensitively, as stored.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Practice, Game:
		return k, nil
	}
	return "", fmt.Errorf("parse kind %q: %w", s, ErrInvalidKind)
}

// Record is one tracked session. Marks hold individual +1/-1 events; totals
// are always derived from them.
type Record struct {
	ID    string                      `json:"id"`
	Type  Kind                        `json:"type"`
	Date  time.Time                   `json:"date"`
	Marks map[string]map[string][]int `json:"marks"`
	Notes map[string]string           `json:"notes"`
}

func newRecord(id string, kind Kind, at time.Time) *Record {
	return &Record{
		ID:    id,
		Type:  kind,
		Date:  at,
		Marks: make(map[string]map[string][]int),
		Notes: make(map[string]string),
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := &Record{ID: r.ID, Type: r.Type, Date: r.Date}
	if r.Marks != nil {
		c.Marks = make(map[string]map[string][]int, len(r.Marks))
		for p, cats := range r.Marks {
			if cats == nil {
				c.Marks[p] = nil
				continue
			}
			cc := make(map[string][]int, len(cats))
			for cat, list := range cats {
				if list == nil {
					cc[cat] = nil
					continue
				}
				cc[cat] = append(make([]int, 0, len(list)), list...)
			}
			c.Marks[p] = cc
		}
	}
	if r.Notes != nil {
		c.Notes = make(map[string]string, len(r.Notes))
		for p, n := range r.Notes {
			c.Notes[p] = n
		}
	}
	return c
}

// CategoryTotal is the sum of a player's marks in one category. Missing
// players or categories count as zero.
func CategoryTotal(r *Record, player, category string) int {
	if r == nil {
		return 0
	}
	sum := 0
	for _, v := range r.Marks[player][category] {
		sum += v
	}
	return sum
}

// Total is a player's session total across all categories.
func Total(r *Record, player string) int {
	if r == nil {
		return 0
	}
	sum := 0
	for category := range r.Marks[player] {
		sum += CategoryTotal(r, player, category)
	}
	return sum
}

// IsPresent reads the attendance flag.
func IsPresent(r *Record, player string) bool {
	return CategoryTotal(r, player, Attendance) > 0
}

// HasMarks reports whether any of the player's mark lists is non-empty.
func HasMarks(r *Record, player string) bool {
	if r == nil {
		return false
	}
	for _, list := range r.Marks[player] {
		if len(list) > 0 {
			return true
		}
	}
	return false
}

// HasActivity reports whether the player has a mark or a note in r.
func HasActivity(r *Record, player string) bool {
	if r == nil {
		return false
	}
	return HasMarks(r, player) || r.Notes[player] != ""
}

// ActivePlayers filters players down to those with at least one mark.
func ActivePlayers(r *Record, players []string) []string {
	var out []string
	for _, p := range players {
		if HasMarks(r, p) {
			out = append(out, p)
		}
	}
	return out
}

// PresentCount counts the players marked present.
func PresentCount(r *Record, players []string) int {
	n := 0
	for _, p := range players {
		if IsPresent(r, p) {
			n++
		}
	}
	return n
}
