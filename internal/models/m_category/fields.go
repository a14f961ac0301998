package m_category

// Field name constants for the categories table.
const (
	TableName = "categories"

	CategoryID  = "category_id"
	Name        = "name"
	Description = "description"
	ParentID    = "parent_id"
	CreatedAt   = "created_at"
)

// NameIndex is the unique index on category name.
const NameIndex = "idx_categories_name"

// Columns lists every column in Data order.
var Columns = []string{CategoryID, Name, Description, ParentID, CreatedAt}
