package session

import "iter"

// Archive is the ordered history of finalized sessions. Records are never
// edited once archived; they can only be removed.
type Archive struct {
	records []*Record
}

// NewArchive builds an archive from previously persisted records, in order.
func NewArchive(records []*Record) *Archive {
	a := &Archive{}
	for _, r := range records {
		if r != nil {
			a.records = append(a.records, r.Clone())
		}
	}
	return a
}

// Add appends a finalized record.
func (a *Archive) Add(r *Record) {
	a.records = append(a.records, r.Clone())
}

// Remove deletes the record with the given id. Removing an unknown id is a
// no-op and reports false.
func (a *Archive) Remove(id string) bool {
	for i, r := range a.records {
		if r.ID == id {
			a.records = append(a.records[:i], a.records[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the record with the given id.
func (a *Archive) Get(id string) (*Record, bool) {
	for _, r := range a.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return nil, false
}

func (a *Archive) Len() int { return len(a.records) }

// List yields copies of the records in chronological order.
func (a *Archive) List() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, r := range a.records {
			if !yield(r.Clone()) {
				return
			}
		}
	}
}

// Reverse yields copies of the records, most recent first.
func (a *Archive) Reverse() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for i := len(a.records) - 1; i >= 0; i-- {
			if !yield(a.records[i].Clone()) {
				return
			}
		}
	}
}

// Records returns a snapshot suitable for persistence.
func (a *Archive) Records() []*Record {
	out := make([]*Record, 0, len(a.records))
	for r := range a.List() {
		out = append(out, r)
	}
	return out
}
