package m_category

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the categories table.
type Data struct {
	CategoryID  string             `spanner:"category_id"`
	Name        string             `spanner:"name"`
	Description spanner.NullString `spanner:"description"`
	ParentID    spanner.NullString `spanner:"parent_id"`
	CreatedAt   time.Time          `spanner:"created_at"`
}

// Model provides type-safe operations on the categories table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a category.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.CategoryID,
		data.Name,
		data.Description,
		data.ParentID,
		spanner.CommitTimestamp,
	})
}
