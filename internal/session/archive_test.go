package session

import (
	"testing"
	"time"
)

func archiveOf(ids ...string) *Archive {
	var records []*Record
	for i, id := range ids {
		records = append(records, &Record{
			ID:    id,
			Type:  Practice,
			Date:  time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC),
			Marks: map[string]map[string][]int{},
			Notes: map[string]string{},
		})
	}
	return NewArchive(records)
}

func ids(a *Archive) []string {
	var out []string
	for r := range a.List() {
		out = append(out, r.ID)
	}
	return out
}

func TestArchiveListOrder(t *testing.T) {
	a := archiveOf("a", "b", "c")
	got := ids(a)
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("List = %v", got)
	}
	// Restartable.
	if again := ids(a); len(again) != 3 {
		t.Fatalf("second pass = %v", again)
	}

	var rev []string
	for r := range a.Reverse() {
		rev = append(rev, r.ID)
	}
	if rev[0] != "c" || rev[2] != "a" {
		t.Fatalf("Reverse = %v", rev)
	}
}

func TestArchiveListStopsEarly(t *testing.T) {
	a := archiveOf("a", "b", "c")
	n := 0
	for range a.List() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("iterated %d", n)
	}
}

func TestArchiveRemove(t *testing.T) {
	a := archiveOf("a", "b", "c")
	if !a.Remove("b") {
		t.Fatal("remove b should report true")
	}
	if a.Remove("b") {
		t.Fatal("second remove should be a no-op")
	}
	if a.Remove("zzz") {
		t.Fatal("unknown id should be a no-op")
	}
	got := ids(a)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("after remove = %v", got)
	}
}

func TestArchivedRecordsAreImmutable(t *testing.T) {
	a := archiveOf("a")
	for r := range a.List() {
		r.Notes["X"] = "edited"
		r.Marks["X"] = map[string][]int{"Hustle": {1}}
	}
	r, _ := a.Get("a")
	if len(r.Notes) != 0 || len(r.Marks) != 0 {
		t.Fatal("archive entries must not be editable through List")
	}

	src := &Record{ID: "z", Marks: map[string]map[string][]int{}, Notes: map[string]string{}}
	a.Add(src)
	src.Notes["X"] = "late edit"
	got, _ := a.Get("z")
	if got.Notes["X"] != "" {
		t.Fatal("Add must copy the record")
	}
}

func TestArchiveRecordsSnapshot(t *testing.T) {
	a := archiveOf("a", "b")
	snap := a.Records()
	if len(snap) != 2 || a.Len() != 2 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	if _, ok := a.Get("missing"); ok {
		t.Fatal("missing id should not be found")
	}
}
