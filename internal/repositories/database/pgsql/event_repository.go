package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

type PgxEventRepository struct {
	BaseRepository
}

func newPgxEventRepository(db DBTX) *PgxEventRepository {
	return &PgxEventRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.EventRepositoryFacade = (*PgxEventRepository)(nil)

func (r *PgxEventRepository) SaveEvent(ctx context.Context, e domain.Event) error {
	query := `
		INSERT INTO events (
			event_id, club_id, title, event_date, entry_fee, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.DB.Exec(ctx, query,
		e.EventID, e.ClubID, e.Title, e.EventDate, e.EntryFee, e.Status,
		e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return queryFailed("insert event "+e.EventID, err)
	}
	return nil
}

func (r *PgxEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	query := `
		SELECT event_id, club_id, title, event_date, entry_fee, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM events
		WHERE event_id = $1;
	`
	var e domain.Event
	err := r.DB.QueryRow(ctx, query, eventID).Scan(
		&e.EventID, &e.ClubID, &e.Title, &e.EventDate, &e.EntryFee, &e.Status,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find event "+eventID, err)
	}

	rows, err := r.DB.Query(ctx, `SELECT member_id FROM event_participants WHERE event_id = $1 ORDER BY joined_at, member_id;`, eventID)
	if err != nil {
		return nil, queryFailed("list participants of event "+eventID, err)
	}
	e.ParticipantIDs, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, queryFailed("scan participants", err)
	}
	return &e, nil
}

func (r *PgxEventRepository) AddParticipant(ctx context.Context, eventID, memberID string) error {
	query := `
		INSERT INTO event_participants (event_id, member_id, joined_at)
		VALUES ($1, $2, now())
		ON CONFLICT (event_id, member_id) DO NOTHING;
	`
	if _, err := r.DB.Exec(ctx, query, eventID, memberID); err != nil {
		return queryFailed("add participant to event "+eventID, err)
	}
	return nil
}

// UpdateEventStatus moves an OPEN event to the given status; a closed event cannot change again.
func (r *PgxEventRepository) UpdateEventStatus(ctx context.Context, e domain.Event) error {
	query := `
		UPDATE events
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE event_id = $1 AND status = 'OPEN';
	`
	tag, err := r.DB.Exec(ctx, query, e.EventID, e.Status, e.LastUpdatedAt, e.LastUpdatedBy)
	if err != nil {
		return queryFailed("update event "+e.EventID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
