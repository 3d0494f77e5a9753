package bank

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
)

// Statement files live in one directory:
//
//	accounts.csv            account_number,holder_name
//	<account_number>.csv    occurred_at,amount,balance_after,description[,unique_key]
//
// occurred_at is "2006-01-02 15:04:05" in the gateway's location; amount is signed.
const (
	statementTimeFormat = "2006-01-02 15:04:05"
	accountsFile        = "accounts.csv"

	stmtColOccurredAt   = 0
	stmtColAmount       = 1
	stmtColBalanceAfter = 2
	stmtColDescription  = 3
	stmtColUniqueKey    = 4
	stmtMinFields       = 4
)

var errReadOnlyStatement = fmt.Errorf("statement import cannot move money: %w", apperrors.ErrValidation)

// StatementGateway serves transaction history from exported CSV statements. It is read-only:
// opening accounts and refunds are rejected.
type StatementGateway struct {
	dir      string
	location *time.Location
}

var _ gateways.BankGateway = (*StatementGateway)(nil)

// NewStatementGateway reads statements from dir, interpreting timestamps in loc (UTC when nil).
func NewStatementGateway(dir string, loc *time.Location) *StatementGateway {
	if loc == nil {
		loc = time.UTC
	}
	return &StatementGateway{dir: dir, location: loc}
}

// GetTransactions returns statement lines whose date falls within [from, to], both inclusive.
func (g *StatementGateway) GetTransactions(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.RawTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(g.statementPath(accountNumber))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(502, "failed to open statement of "+accountNumber, err)
	}
	defer f.Close()

	all, err := g.parseStatement(f)
	if err != nil {
		return nil, apperrors.NewAppError(502, "failed to parse statement of "+accountNumber, err)
	}

	first := domain.DateOnly(from.In(g.location))
	end := domain.DateOnly(to.In(g.location)).AddDate(0, 0, 1)
	var txs []domain.RawTransaction
	for _, t := range all {
		if t.OccurredAt.Before(first) || !t.OccurredAt.Before(end) {
			continue
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func (g *StatementGateway) CreateAccount(context.Context, gateways.CreateAccountRequest) (*gateways.AccountResult, error) {
	return nil, errReadOnlyStatement
}

func (g *StatementGateway) Refund(context.Context, gateways.RefundRequest) (*gateways.RefundResult, error) {
	return nil, errReadOnlyStatement
}

// InquireAccountOwner looks the account up in accounts.csv; nil means unknown.
func (g *StatementGateway) InquireAccountOwner(ctx context.Context, accountNumber string) (*gateways.OwnerResult, error) {
	f, err := os.Open(filepath.Join(g.dir, accountsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(502, "failed to open statement account list", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewAppError(502, "failed to read statement account list", err)
	}
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "account_number") {
			continue
		}
		if rec[0] == accountNumber {
			return &gateways.OwnerResult{AccountNumber: rec[0], HolderName: rec[1]}, nil
		}
	}
	return nil, nil
}

func (g *StatementGateway) statementPath(accountNumber string) string {
	return filepath.Join(g.dir, filepath.Base(accountNumber)+".csv")
}

func (g *StatementGateway) parseStatement(r io.Reader) ([]domain.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	txs := make([]domain.RawTransaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		t, err := g.parseStatementRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if t.Amount.IsZero() {
			continue
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func (g *StatementGateway) parseStatementRow(rec []string) (domain.RawTransaction, error) {
	if len(rec) < stmtMinFields {
		return domain.RawTransaction{}, fmt.Errorf("expected at least %d fields, got %d", stmtMinFields, len(rec))
	}
	at, err := time.ParseInLocation(statementTimeFormat, rec[stmtColOccurredAt], g.location)
	if err != nil {
		return domain.RawTransaction{}, fmt.Errorf("parsing time %q: %w", rec[stmtColOccurredAt], err)
	}
	amount, err := decimal.NewFromString(rec[stmtColAmount])
	if err != nil {
		return domain.RawTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[stmtColAmount], err)
	}
	balance, err := decimal.NewFromString(rec[stmtColBalanceAfter])
	if err != nil {
		return domain.RawTransaction{}, fmt.Errorf("parsing balance %q: %w", rec[stmtColBalanceAfter], err)
	}

	t := domain.RawTransaction{
		OccurredAt:   at,
		Amount:       amount,
		BalanceAfter: balance,
		Description:  rec[stmtColDescription],
	}
	if len(rec) > stmtColUniqueKey {
		t.UniqueKey = strings.TrimSpace(rec[stmtColUniqueKey])
	}
	return t, nil
}
