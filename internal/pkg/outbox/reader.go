package outbox

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/models/m_outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Filter narrows an event listing. Empty fields match everything.
type Filter struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int64
}

// Reader lists stored outbox events, newest first.
type Reader struct {
	client *spanner.Client
}

// NewReader creates a new Reader.
func NewReader(client *spanner.Client) *Reader {
	return &Reader{client: client}
}

// ListEvents retrieves events matching the filter.
func (r *Reader) ListEvents(ctx context.Context, filter Filter) ([]*m_outbox.Data, error) {
	stmt := listStatement(filter)

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

func listStatement(filter Filter) spanner.Statement {
	b := query.From(m_outbox.TableName).Select(m_outbox.Columns...)
	if filter.EventType != "" {
		b = b.Where(query.Eq(m_outbox.EventType, filter.EventType))
	}
	if filter.AggregateID != "" {
		b = b.Where(query.Eq(m_outbox.AggregateID, filter.AggregateID))
	}
	if filter.Status != "" {
		b = b.Where(query.Eq(m_outbox.Status, filter.Status))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return b.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(limit).Build()
}
