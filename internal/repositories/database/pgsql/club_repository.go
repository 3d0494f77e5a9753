package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

type PgxClubRepository struct {
	BaseRepository
}

func newPgxClubRepository(db DBTX) *PgxClubRepository {
	return &PgxClubRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ClubRepositoryFacade = (*PgxClubRepository)(nil)

func (r *PgxClubRepository) SaveClub(ctx context.Context, club domain.Club) error {
	query := `
		INSERT INTO clubs (club_id, name, club_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.DB.Exec(ctx, query,
		club.ClubID, club.Name, club.ClubType,
		club.CreatedAt, club.CreatedBy, club.LastUpdatedAt, club.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return queryFailed("insert club "+club.ClubID, err)
	}
	return nil
}

func (r *PgxClubRepository) FindClubByID(ctx context.Context, clubID string) (*domain.Club, error) {
	query := `
		SELECT club_id, name, club_type, created_at, created_by, last_updated_at, last_updated_by
		FROM clubs
		WHERE club_id = $1;
	`
	var c domain.Club
	err := r.DB.QueryRow(ctx, query, clubID).Scan(
		&c.ClubID, &c.Name, &c.ClubType,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find club "+clubID, err)
	}
	return &c, nil
}

func (r *PgxClubRepository) ListClubIDsWithAccount(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT club_id FROM club_accounts ORDER BY club_id;`)
	if err != nil {
		return nil, queryFailed("list clubs with account", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, queryFailed("scan club ids", err)
	}
	return ids, nil
}

type PgxMemberRepository struct {
	BaseRepository
}

func newPgxMemberRepository(db DBTX) *PgxMemberRepository {
	return &PgxMemberRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberColumns = `member_id, club_id, user_id, real_name, nickname, status,
		created_at, created_by, last_updated_at, last_updated_by`

func scanMember(row pgx.Row) (domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.MemberID, &m.ClubID, &m.UserID, &m.RealName, &m.Nickname, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxMemberRepository) SaveMember(ctx context.Context, m domain.Member) error {
	query := `INSERT INTO members (` + memberColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.DB.Exec(ctx, query,
		m.MemberID, m.ClubID, m.UserID, m.RealName, m.Nickname, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return queryFailed("insert member "+m.MemberID, err)
	}
	return nil
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	m, err := scanMember(r.DB.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find member "+memberID, err)
	}
	return &m, nil
}

func (r *PgxMemberRepository) ListMembersByClub(ctx context.Context, clubID string) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE club_id = $1 ORDER BY created_at, member_id;`
	rows, err := r.DB.Query(ctx, query, clubID)
	if err != nil {
		return nil, queryFailed("list members of club "+clubID, err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, queryFailed("scan member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate members", err)
	}
	return members, nil
}
