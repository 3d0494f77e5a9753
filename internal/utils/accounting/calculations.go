package accounting

import (
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TotalIncome sums the expected amounts of matched deposit requests.
func TotalIncome(requests []domain.PaymentRequest) decimal.Decimal {
	total := decimal.Zero
	for _, r := range requests {
		if r.Status == domain.RequestMatched && r.RequestType == domain.RequestDeposit {
			total = total.Add(r.ExpectedAmount)
		}
	}
	return total
}

// TotalExpense returns the magnitude of all outbound ledger entries.
// Inbound entries tagged with the same event (matched fees) are not expenses and are skipped.
func TotalExpense(entries []domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Amount.IsNegative() {
			total = total.Add(e.Amount.Neg())
		}
	}
	return total
}

// SplitRefund divides balance evenly across payers in whole currency units, rounding down,
// so the refunds never add up to more than balance. The undistributed remainder is returned.
func SplitRefund(balance decimal.Decimal, payers int) (perPerson decimal.Decimal, remainder decimal.Decimal) {
	if payers <= 0 || !balance.IsPositive() {
		return decimal.Zero, balance
	}
	count := decimal.NewFromInt(int64(payers))
	perPerson = balance.Div(count).Floor()
	remainder = balance.Sub(perPerson.Mul(count))
	return perPerson, remainder
}

// DistinctPayers keeps the first matched deposit request of every member, in input order.
func DistinctPayers(requests []domain.PaymentRequest) []domain.PaymentRequest {
	seen := make(map[string]bool, len(requests))
	payers := make([]domain.PaymentRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status != domain.RequestMatched || r.RequestType != domain.RequestDeposit {
			continue
		}
		if seen[r.MemberID] {
			continue
		}
		seen[r.MemberID] = true
		payers = append(payers, r)
	}
	return payers
}
