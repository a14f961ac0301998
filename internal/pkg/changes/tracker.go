// Package changes tracks which fields of an aggregate were modified so
// repositories can write only those columns.
package changes

// Tracker records dirty field names.
type Tracker struct {
	dirtyFields map[string]bool
}

// NewTracker creates a new Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		dirtyFields: make(map[string]bool),
	}
}

// MarkDirty marks a field as modified.
func (t *Tracker) MarkDirty(field string) {
	t.dirtyFields[field] = true
}

// Dirty checks if a field has been modified.
func (t *Tracker) Dirty(field string) bool {
	return t.dirtyFields[field]
}

// Clear clears all dirty field markers.
func (t *Tracker) Clear() {
	t.dirtyFields = make(map[string]bool)
}

// HasChanges returns true if any field has been modified.
func (t *Tracker) HasChanges() bool {
	return len(t.dirtyFields) > 0
}

// DirtyFields returns all dirty field names.
func (t *Tracker) DirtyFields() []string {
	fields := make([]string, 0, len(t.dirtyFields))
	for field := range t.dirtyFields {
		fields = append(fields, field)
	}
	return fields
}
