package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryType_ValidateSign(t *testing.T) {
	pos := decimal.NewFromInt(100)
	neg := decimal.NewFromInt(-100)

	tests := []struct {
		name    string
		typ     domain.EntryType
		amount  decimal.Decimal
		wantErr bool
	}{
		{"deposit positive", domain.EntryDeposit, pos, false},
		{"deposit negative", domain.EntryDeposit, neg, true},
		{"withdraw negative", domain.EntryWithdraw, neg, false},
		{"withdraw positive", domain.EntryWithdraw, pos, true},
		{"expense negative", domain.EntryExpense, neg, false},
		{"income zero", domain.EntryIncome, decimal.Zero, true},
		{"adjustment either sign", domain.EntryAdjustment, neg, false},
		{"adjustment zero", domain.EntryAdjustment, decimal.Zero, true},
		{"unknown type", domain.EntryType("GIFT"), pos, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.ValidateSign(tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextEntry_RunningBalance(t *testing.T) {
	first, err := domain.NextEntry(nil, domain.LedgerEntry{EntryType: domain.EntryDeposit, Amount: decimal.NewFromInt(30000)})
	require.NoError(t, err)
	assert.True(t, first.BalanceAfter.Equal(decimal.NewFromInt(30000)))

	second, err := domain.NextEntry(&first, domain.LedgerEntry{EntryType: domain.EntryWithdraw, Amount: decimal.NewFromInt(-12500)})
	require.NoError(t, err)
	assert.True(t, second.BalanceAfter.Equal(decimal.NewFromInt(17500)))

	third, err := domain.NextEntry(&second, domain.LedgerEntry{EntryType: domain.EntryAdjustment, Amount: decimal.RequireFromString("0.5")})
	require.NoError(t, err)
	assert.Equal(t, "17500.5", third.BalanceAfter.String())

	assert.Equal(t, -1, domain.VerifyChain(decimal.Zero, []domain.LedgerEntry{first, second, third}))

	third.BalanceAfter = decimal.NewFromInt(1)
	assert.Equal(t, 2, domain.VerifyChain(decimal.Zero, []domain.LedgerEntry{first, second, third}))
}

func TestNextEntry_RejectsWrongSign(t *testing.T) {
	_, err := domain.NextEntry(nil, domain.LedgerEntry{EntryType: domain.EntryWithdraw, Amount: decimal.NewFromInt(500)})
	assert.Error(t, err)
}

func TestBankTransaction_SignedAmount(t *testing.T) {
	tx := domain.BankTransaction{Amount: decimal.NewFromInt(700), InoutType: domain.Withdraw}
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(-700)))
	tx.InoutType = domain.Deposit
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(700)))

	assert.Equal(t, domain.Deposit, domain.InoutTypeOf(decimal.NewFromInt(1)))
	assert.Equal(t, domain.Withdraw, domain.InoutTypeOf(decimal.NewFromInt(-1)))
	assert.Equal(t, domain.Withdraw, domain.InoutTypeOf(decimal.Zero))
}

func TestRawTransaction_DedupKey(t *testing.T) {
	at := time.Date(2026, 4, 2, 13, 5, 9, 0, time.UTC)
	raw := domain.RawTransaction{OccurredAt: at, Amount: decimal.NewFromInt(30000), Description: "홍길동"}

	key := raw.DedupKey()
	assert.Len(t, key, 64)
	assert.Equal(t, key, raw.DedupKey(), "derivation must be deterministic")

	same := domain.RawTransaction{OccurredAt: at, Amount: decimal.RequireFromString("30000.00"), Description: " 홍길동 ", BalanceAfter: decimal.NewFromInt(1)}
	assert.Equal(t, key, same.DedupKey(), "balance and formatting must not change the key")

	outbound := raw
	outbound.Amount = decimal.NewFromInt(-30000)
	assert.NotEqual(t, key, outbound.DedupKey(), "direction is part of the key")

	later := raw
	later.OccurredAt = at.Add(time.Second)
	assert.NotEqual(t, key, later.DedupKey())

	native := raw
	native.UniqueKey = "bank-ref-1"
	assert.Equal(t, "bank-ref-1", native.DedupKey())
}
