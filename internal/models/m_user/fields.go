package m_user

// Field name constants for the users table.
const (
	TableName = "users"

	UserID       = "user_id"
	Username     = "username"
	Email        = "email"
	FullName     = "full_name"
	PasswordHash = "password_hash"
	Role         = "role"
	Active       = "active"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)

// UsernameIndex is the unique index on username.
const UsernameIndex = "idx_users_username"

// Columns lists every column in Data order.
var Columns = []string{
	UserID,
	Username,
	Email,
	FullName,
	PasswordHash,
	Role,
	Active,
	CreatedAt,
	UpdatedAt,
}
