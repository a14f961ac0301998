package query

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// Reader is the read surface shared by single-use read-only transactions
// and read-write transactions. Repositories read through it so the same
// lookup can run inside RunInTx (locking the rows it reads) or outside.
type Reader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	ReadRowUsingIndex(ctx context.Context, table, index string, key spanner.Key, columns []string) (*spanner.Row, error)
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// IsNotFound reports whether a single-row read found nothing.
func IsNotFound(err error) bool {
	return spanner.ErrCode(err) == codes.NotFound
}
