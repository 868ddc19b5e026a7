// Package roster keeps the ordered list of player names.
package roster

import (
	"fmt"
	"strings"
)

// DefaultPlayers is the roster used on first run.
var DefaultPlayers = []string{
	"Nixon Antonio", "Daxton Archibald", "Kellan Blevins-Proctor", "Noah Davies",
	"Carter Devin", "Graham Glasser", "Nolan Guidinger", "Kane Keenan",
	"Cash Mackie", "James Maier", "Bennett Miller", "Roen Peterson",
	"Kian Ross", "Grayson Russell", "Nicolas Vargas", "Rhett Wilson",
}

// Roster is an ordered list of player names with at least one entry.
// Names are not required to be unique.
type Roster struct {
	names []string
}

// New builds a roster from names. An empty list falls back to DefaultPlayers
// so the roster is never empty.
func New(names []string) *Roster {
	if len(names) == 0 {
		names = DefaultPlayers
	}
	return &Roster{names: append([]string(nil), names...)}
}

// Names returns a copy of the player names in order.
func (r *Roster) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Roster) Len() int { return len(r.names) }

// Add appends a placeholder player and returns its name.
func (r *Roster) Add() string {
	name := fmt.Sprintf("Player %d", len(r.names)+1)
	r.names = append(r.names, name)
	return name
}

// Rename replaces the name at index. A blank name keeps the existing one.
func (r *Roster) Rename(index int, name string) bool {
	if index < 0 || index >= len(r.names) {
		return false
	}
	if strings.TrimSpace(name) == "" || name == r.names[index] {
		return false
	}
	r.names[index] = name
	return true
}

// Remove deletes the player at index. The last remaining player cannot be
// removed.
func (r *Roster) Remove(index int) bool {
	if len(r.names) <= 1 || index < 0 || index >= len(r.names) {
		return false
	}
	r.names = append(r.names[:index], r.names[index+1:]...)
	return true
}
