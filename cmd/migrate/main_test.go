package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `-- users
CREATE TABLE users (
  user_id STRING(36) NOT NULL,
) PRIMARY KEY (user_id);

CREATE UNIQUE INDEX idx_users_username ON users(username);
`
	statements := splitDDLStatements(content)
	require.Len(t, statements, 2)
	assert.Contains(t, statements[0], "CREATE TABLE users")
	assert.Equal(t, "CREATE UNIQUE INDEX idx_users_username ON users(username)", statements[1])
}

func TestPendingStatements(t *testing.T) {
	existing := existingObjects([]string{
		"CREATE TABLE users (\n  user_id STRING(36) NOT NULL,\n) PRIMARY KEY(user_id)",
		"CREATE UNIQUE NULL_FILTERED INDEX idx_users_email ON users(email)",
	})
	assert.True(t, existing["TABLE users"])
	assert.True(t, existing["INDEX idx_users_email"])

	pending := pendingStatements([]string{
		"CREATE TABLE users (user_id STRING(36)) PRIMARY KEY (user_id)",
		"CREATE UNIQUE NULL_FILTERED INDEX idx_users_email ON users(email)",
		"CREATE TABLE carts (cart_id STRING(36)) PRIMARY KEY (cart_id)",
		"ALTER TABLE users ADD COLUMN nickname STRING(50)",
	}, existing)
	assert.Equal(t, []string{
		"CREATE TABLE carts (cart_id STRING(36)) PRIMARY KEY (cart_id)",
		"ALTER TABLE users ADD COLUMN nickname STRING(50)",
	}, pending)
}

func TestParseDatabasePath(t *testing.T) {
	p, i, d, err := parseDatabasePath("projects/test-project/instances/dev-instance/databases/backoffice-db")
	require.NoError(t, err)
	assert.Equal(t, []string{"test-project", "dev-instance", "backoffice-db"}, []string{p, i, d})

	_, _, _, err = parseDatabasePath("backoffice-db")
	assert.Error(t, err)
}
