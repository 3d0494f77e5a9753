package repositories

import (
	"context"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// EventReader defines read operations for club events
type EventReader interface {
	// FindEventByID retrieves an event with its participant member IDs.
	FindEventByID(ctx context.Context, eventID string) (*domain.Event, error)
}

// EventWriter defines write operations for club events
type EventWriter interface {
	SaveEvent(ctx context.Context, event domain.Event) error
	AddParticipant(ctx context.Context, eventID, memberID string) error
	UpdateEventStatus(ctx context.Context, event domain.Event) error
}

// EventRepositoryFacade combines all event-related repository interfaces
type EventRepositoryFacade interface {
	EventReader
	EventWriter
}
