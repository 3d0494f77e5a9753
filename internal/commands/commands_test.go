package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "sync", "expire", "settle", "statement"}, names)
}

func TestMigrateCommand_RejectsUnknownDirection(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"migrate", "sideways"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestSettleCommand_NeedsClubAndEvent(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"settle", "club-1"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestParseFlagDay(t *testing.T) {
	none, err := parseFlagDay("", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, none)

	day, err := parseFlagDay("2026-03-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *day)

	_, err = parseFlagDay("03/15/2026", time.UTC)
	assert.Error(t, err)
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	printEntries(&buf, []domain.LedgerEntry{
		{EntryType: domain.EntryDeposit, Amount: decimal.NewFromInt(20000), BalanceAfter: decimal.NewFromInt(20000), Memo: "KIM MINSU",
			CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		{EntryType: domain.EntryExpense, Amount: decimal.NewFromInt(-5000), BalanceAfter: decimal.NewFromInt(15000), Memo: "court",
			CreatedAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)},
	})

	out := buf.String()
	assert.Contains(t, out, "+20000")
	assert.Contains(t, out, "-5000")
	assert.Contains(t, out, "2026-03-03")
	assert.Contains(t, out, "court")
}
