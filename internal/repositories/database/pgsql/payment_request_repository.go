package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

type PgxPaymentRequestRepository struct {
	BaseRepository
}

func newPgxPaymentRequestRepository(db DBTX) *PgxPaymentRequestRepository {
	return &PgxPaymentRequestRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.PaymentRequestRepositoryFacade = (*PgxPaymentRequestRepository)(nil)

const paymentRequestColumns = `request_id, club_id, member_id, member_name, request_type,
		expected_amount, expected_date, date_range_days, event_id, expires_at, status,
		matched_transaction_id, match_type, matched_by, matched_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentRequest(row pgx.Row) (domain.PaymentRequest, error) {
	var (
		p         domain.PaymentRequest
		matchType *string
	)
	err := row.Scan(
		&p.RequestID, &p.ClubID, &p.MemberID, &p.MemberName, &p.RequestType,
		&p.ExpectedAmount, &p.ExpectedDate, &p.DateRangeDays, &p.EventID, &p.ExpiresAt, &p.Status,
		&p.MatchedTransactionID, &matchType, &p.MatchedBy, &p.MatchedAt,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return p, err
	}
	if matchType != nil {
		mt := domain.MatchType(*matchType)
		p.MatchType = &mt
	}
	return p, nil
}

func matchTypeParam(mt *domain.MatchType) *string {
	if mt == nil {
		return nil
	}
	s := string(*mt)
	return &s
}

func (r *PgxPaymentRequestRepository) list(ctx context.Context, what, query string, args ...any) ([]domain.PaymentRequest, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, queryFailed("list "+what, err)
	}
	defer rows.Close()

	requests := []domain.PaymentRequest{}
	for rows.Next() {
		p, err := scanPaymentRequest(rows)
		if err != nil {
			return nil, queryFailed("scan payment request", err)
		}
		requests = append(requests, p)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate "+what, err)
	}
	return requests, nil
}

func (r *PgxPaymentRequestRepository) SaveRequest(ctx context.Context, p domain.PaymentRequest) error {
	query := `INSERT INTO payment_requests (` + paymentRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`
	_, err := r.DB.Exec(ctx, query,
		p.RequestID, p.ClubID, p.MemberID, p.MemberName, p.RequestType,
		p.ExpectedAmount, p.ExpectedDate, p.DateRangeDays, p.EventID, p.ExpiresAt, p.Status,
		p.MatchedTransactionID, matchTypeParam(p.MatchType), p.MatchedBy, p.MatchedAt,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return queryFailed("insert payment request "+p.RequestID, err)
	}
	return nil
}

func (r *PgxPaymentRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + ` FROM payment_requests WHERE request_id = $1;`
	p, err := scanPaymentRequest(r.DB.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find payment request "+requestID, err)
	}
	return &p, nil
}

func (r *PgxPaymentRequestRepository) ListMatchableRequests(ctx context.Context, clubID string, now time.Time) ([]domain.PaymentRequest, error) {
	return r.list(ctx, "matchable requests", `SELECT `+paymentRequestColumns+`
		FROM payment_requests
		WHERE club_id = $1 AND status = 'PENDING' AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY seq;`, clubID, now)
}

func (r *PgxPaymentRequestRepository) ListExpiredPendingRequests(ctx context.Context, clubID string, now time.Time) ([]domain.PaymentRequest, error) {
	return r.list(ctx, "expired requests", `SELECT `+paymentRequestColumns+`
		FROM payment_requests
		WHERE club_id = $1 AND status = 'PENDING' AND expires_at < $2
		ORDER BY seq;`, clubID, now)
}

func (r *PgxPaymentRequestRepository) ListRequestsByEvent(ctx context.Context, clubID, eventID string) ([]domain.PaymentRequest, error) {
	return r.list(ctx, "event requests", `SELECT `+paymentRequestColumns+`
		FROM payment_requests
		WHERE club_id = $1 AND event_id = $2
		ORDER BY seq;`, clubID, eventID)
}

func (r *PgxPaymentRequestRepository) FindRequestsByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string]domain.PaymentRequest, error) {
	byTx := make(map[string]domain.PaymentRequest, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return byTx, nil
	}
	requests, err := r.list(ctx, "requests by transaction", `SELECT `+paymentRequestColumns+`
		FROM payment_requests
		WHERE matched_transaction_id = ANY($1);`, transactionIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range requests {
		byTx[*p.MatchedTransactionID] = p
	}
	return byTx, nil
}

// UpdateRequestStatus writes the status and match columns of a request still PENDING in storage.
func (r *PgxPaymentRequestRepository) UpdateRequestStatus(ctx context.Context, p domain.PaymentRequest) error {
	query := `
		UPDATE payment_requests
		SET status = $2, matched_transaction_id = $3, match_type = $4, matched_by = $5, matched_at = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE request_id = $1 AND status = 'PENDING';
	`
	tag, err := r.DB.Exec(ctx, query,
		p.RequestID, p.Status, p.MatchedTransactionID, matchTypeParam(p.MatchType), p.MatchedBy, p.MatchedAt,
		p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return queryFailed("update payment request "+p.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
