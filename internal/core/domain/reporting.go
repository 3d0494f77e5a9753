package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryTypeTotal is the net amount and count of one entry type within a statement
type EntryTypeTotal struct {
	EntryType EntryType       `json:"entryType"`
	Count     int             `json:"count"`
	Amount    decimal.Decimal `json:"amount"`
}

// LedgerStatement summarises a club's journal over a period
type LedgerStatement struct {
	ClubID         string           `json:"clubID"`
	From           time.Time        `json:"from"`
	To             time.Time        `json:"to"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
	TotalIn        decimal.Decimal  `json:"totalIn"`  // Sum of positive amounts
	TotalOut       decimal.Decimal  `json:"totalOut"` // Magnitude of negative amounts
	ByType         []EntryTypeTotal `json:"byType"`
	Entries        []LedgerEntry    `json:"entries"`
	// BrokenEntryID is the first entry whose balanceAfter does not follow its predecessor.
	BrokenEntryID *string `json:"brokenEntryID,omitempty"`
}

var statementTypeOrder = []EntryType{EntryDeposit, EntryIncome, EntryWithdraw, EntryExpense, EntryAdjustment}

// BuildStatement aggregates entries (in creation order) into a statement. The opening balance is
// derived from the first entry, so an empty range opens and closes at zero.
func BuildStatement(clubID string, from, to time.Time, entries []LedgerEntry) LedgerStatement {
	st := LedgerStatement{
		ClubID:         clubID,
		From:           from,
		To:             to,
		OpeningBalance: decimal.Zero,
		ClosingBalance: decimal.Zero,
		TotalIn:        decimal.Zero,
		TotalOut:       decimal.Zero,
		ByType:         []EntryTypeTotal{},
		Entries:        entries,
	}
	if len(entries) == 0 {
		return st
	}

	st.OpeningBalance = entries[0].BalanceAfter.Sub(entries[0].Amount)
	st.ClosingBalance = entries[len(entries)-1].BalanceAfter

	totals := make(map[EntryType]*EntryTypeTotal)
	for _, e := range entries {
		if e.Amount.IsPositive() {
			st.TotalIn = st.TotalIn.Add(e.Amount)
		} else {
			st.TotalOut = st.TotalOut.Add(e.Amount.Neg())
		}
		t, ok := totals[e.EntryType]
		if !ok {
			t = &EntryTypeTotal{EntryType: e.EntryType, Amount: decimal.Zero}
			totals[e.EntryType] = t
		}
		t.Count++
		t.Amount = t.Amount.Add(e.Amount)
	}
	for _, typ := range statementTypeOrder {
		if t, ok := totals[typ]; ok {
			st.ByType = append(st.ByType, *t)
		}
	}

	if i := VerifyChain(st.OpeningBalance, entries); i >= 0 {
		id := entries[i].EntryID
		st.BrokenEntryID = &id
	}
	return st
}
