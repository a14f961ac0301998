// Package outbox writes domain events into the outbox_events table in the
// same transaction as the state change that produced them.
package outbox

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/backoffice-service/internal/models/m_outbox"
)

// Event is implemented by every domain event.
type Event interface {
	EventType() string
	AggregateID() string
}

// Repo builds outbox mutations. It never writes on its own.
type Repo struct {
	model *m_outbox.Model
	newID func() string
}

// NewRepo creates a new outbox Repo.
func NewRepo() *Repo {
	return &Repo{
		model: m_outbox.NewModel(),
		newID: func() string { return uuid.New().String() },
	}
}

// InsertMut serializes the event to JSON and returns its insert mutation.
func (r *Repo) InsertMut(event Event) (*spanner.Mutation, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s event: %w", event.EventType(), err)
	}

	return r.model.InsertMut(&m_outbox.Data{
		EventID:     r.newID(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     spanner.NullJSON{Value: json.RawMessage(payload), Valid: true},
		Status:      m_outbox.StatusPending,
	}), nil
}

// InsertMuts returns one insert mutation per event, in order.
func (r *Repo) InsertMuts(events []Event) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		mut, err := r.InsertMut(event)
		if err != nil {
			return nil, err
		}
		muts = append(muts, mut)
	}
	return muts, nil
}
