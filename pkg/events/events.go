// Package events publishes notifications about changes to the ledger.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
	KindDeleted Kind = "deleted"
)

type Resource string

const (
	ResourceTransaction Resource = "transaction"
	ResourceCategory    Resource = "category"
	ResourcePerson      Resource = "person"
)

// Event is a change to a single resource.
type Event struct {
	Kind     Kind      `json:"kind"`
	Resource Resource  `json:"resource"`
	ID       uuid.UUID `json:"id"`
	Time     time.Time `json:"time"`
}

// New returns an event for the resource, timestamped now.
func New(kind Kind, resource Resource, id uuid.UUID) Event {
	return Event{
		Kind:     kind,
		Resource: resource,
		ID:       id,
		Time:     time.Now().In(time.UTC),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON parses an event from JSON bytes
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher sends events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards all events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
