package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, typ domain.EntryType, amount, balance int64) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      id,
		EntryType:    typ,
		Amount:       decimal.NewFromInt(amount),
		BalanceAfter: decimal.NewFromInt(balance),
	}
}

func TestBuildStatement(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("empty range", func(t *testing.T) {
		st := domain.BuildStatement("club-1", from, to, nil)
		assert.True(t, st.OpeningBalance.IsZero())
		assert.True(t, st.ClosingBalance.IsZero())
		assert.Empty(t, st.ByType)
		assert.Nil(t, st.BrokenEntryID)
	})

	t.Run("consistent chain", func(t *testing.T) {
		entries := []domain.LedgerEntry{
			entry("e1", domain.EntryDeposit, 30000, 130000),
			entry("e2", domain.EntryDeposit, 20000, 150000),
			entry("e3", domain.EntryExpense, -45000, 105000),
		}
		st := domain.BuildStatement("club-1", from, to, entries)

		assert.True(t, decimal.NewFromInt(100000).Equal(st.OpeningBalance))
		assert.True(t, decimal.NewFromInt(105000).Equal(st.ClosingBalance))
		assert.True(t, decimal.NewFromInt(50000).Equal(st.TotalIn))
		assert.True(t, decimal.NewFromInt(45000).Equal(st.TotalOut))
		require.Len(t, st.ByType, 2)
		assert.Equal(t, domain.EntryDeposit, st.ByType[0].EntryType)
		assert.Equal(t, 2, st.ByType[0].Count)
		assert.Equal(t, domain.EntryExpense, st.ByType[1].EntryType)
		assert.Nil(t, st.BrokenEntryID)
	})

	t.Run("broken chain is reported", func(t *testing.T) {
		entries := []domain.LedgerEntry{
			entry("e1", domain.EntryDeposit, 10000, 10000),
			entry("e2", domain.EntryWithdraw, -3000, 8000),
		}
		st := domain.BuildStatement("club-1", from, to, entries)
		require.NotNil(t, st.BrokenEntryID)
		assert.Equal(t, "e2", *st.BrokenEntryID)
	})
}
