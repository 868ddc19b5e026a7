package session

// Attendance is the reserved category the engine uses to record presence.
// Its mark list is either [1] (present) or empty (absent).
const Attendance = "Attendance"

// Group is a display grouping of scoring categories.
type Group struct {
	Name       string
	Color      string
	Categories []string
}

var groups = []Group{
	{Name: "Effort / Hustle", Color: "#22c55e", Categories: []string{"Hustle", Attendance, "Homework", "Intensity"}},
	{Name: "Presence", Color: "#3b82f6", Categories: []string{"Game Awareness", "Practice Focus"}},
	{Name: "Sportsmanship", Color: "#f59e0b", Categories: []string{"Humility", "Gracious in Defeat", "Bar Raiser"}},
}

var allCategories = func() []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Categories...)
	}
	return out
}()

// Groups returns the category groups in display order.
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		g.Categories = append([]string(nil), g.Categories...)
		out[i] = g
	}
	return out
}

// Categories returns every category in fixed order.
func Categories() []string {
	return append([]string(nil), allCategories...)
}

// GroupOf returns the group a category belongs to.
func GroupOf(category string) (Group, bool) {
	for _, g := range groups {
		for _, c := range g.Categories {
			if c == category {
				return g, true
			}
		}
	}
	return Group{}, false
}

// IsCategory reports whether category is part of the taxonomy.
func IsCategory(category string) bool {
	_, ok := GroupOf(category)
	return ok
}
