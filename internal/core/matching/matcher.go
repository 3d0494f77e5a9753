// Package matching holds the automatic reconciliation rules that bind freshly ingested
// bank transactions to pending payment requests. Everything here is pure: callers load
// the snapshot, call Plan and persist the returned matches.
package matching

import (
	"strings"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// Match is one transaction bound to one request. Request is already in MATCHED state.
type Match struct {
	Transaction domain.BankTransaction
	Request     domain.PaymentRequest
}

// Input is the snapshot a matching run works on.
type Input struct {
	// Members of the club; only ACTIVE ones take part in name resolution.
	Members []domain.Member
	// Candidates are the matchable requests in creation order, loaded once per run.
	Candidates []domain.PaymentRequest
	// Transactions are the newly ingested transactions in provider order.
	Transactions []domain.BankTransaction
	// ClaimedTransactionIDs are transactions already referenced by some request.
	ClaimedTransactionIDs map[string]bool
	Now                   time.Time
	// Location is the club calendar that request windows and transaction days are read in.
	// Nil means UTC.
	Location *time.Location
}

// Matcher evaluates whether a transaction satisfies a request.
type Matcher struct {
	names    nameIndex
	members  map[string]memberName
	location *time.Location
}

// NewMatcher indexes the active members of a club. Dates are compared as calendar days in loc.
func NewMatcher(members []domain.Member, loc *time.Location) *Matcher {
	if loc == nil {
		loc = time.UTC
	}
	active := make([]memberName, 0, len(members))
	byID := make(map[string]memberName, len(members))
	for _, m := range members {
		if m.Status != domain.MemberActive {
			continue
		}
		mn := memberName{
			memberID: m.MemberID,
			realName: Normalize(m.RealName),
			nickname: Normalize(m.Nickname),
		}
		active = append(active, mn)
		byID[m.MemberID] = mn
	}
	return &Matcher{names: newNameIndex(active), members: byID, location: loc}
}

// AmountMatches requires exact equality of absolute amounts.
func AmountMatches(tx domain.BankTransaction, req domain.PaymentRequest) bool {
	return tx.Amount.Abs().Equal(req.ExpectedAmount.Abs())
}

// DirectionMatches pairs inbound transactions with deposit requests and outbound ones with settlements.
func DirectionMatches(tx domain.BankTransaction, req domain.PaymentRequest) bool {
	switch tx.InoutType {
	case domain.Deposit:
		return req.RequestType != domain.RequestSettlement
	case domain.Withdraw:
		return req.RequestType == domain.RequestSettlement
	}
	return false
}

// DateMatches checks the transaction day in loc against the request window, both ends inclusive.
func DateMatches(tx domain.BankTransaction, req domain.PaymentRequest, loc *time.Location) bool {
	from, to := req.Window(loc)
	day := domain.DateOnly(tx.OccurredAt.In(from.Location()))
	return !day.Before(from) && !day.After(to)
}

// NameMatches reports whether the transaction description names the request's member
// through a real name or nickname that no other active member shares.
func (m *Matcher) NameMatches(tx domain.BankTransaction, req domain.PaymentRequest) bool {
	member, ok := m.members[req.MemberID]
	if !ok {
		return false
	}
	desc := Normalize(tx.PrintContent)
	if desc == "" {
		return false
	}
	if member.realName != "" && strings.Contains(desc, member.realName) &&
		identifies(m.names.realNames, member.realName, member.memberID) {
		return true
	}
	if member.nickname != "" && strings.Contains(desc, member.nickname) &&
		identifies(m.names.nicknames, member.nickname, member.memberID) {
		return true
	}
	return false
}

// Satisfies applies every automatic matching rule.
func (m *Matcher) Satisfies(tx domain.BankTransaction, req domain.PaymentRequest) bool {
	return AmountMatches(tx, req) &&
		DirectionMatches(tx, req) &&
		DateMatches(tx, req, m.location) &&
		m.NameMatches(tx, req)
}

// Plan binds each transaction to the first satisfying candidate, in order.
// A candidate claimed by one transaction is not offered to later ones.
func Plan(in Input) []Match {
	matcher := NewMatcher(in.Members, in.Location)
	taken := make(map[string]bool, len(in.Candidates))
	var matches []Match

	for _, tx := range in.Transactions {
		if tx.Matched || in.ClaimedTransactionIDs[tx.TransactionID] {
			continue
		}
		for _, req := range in.Candidates {
			if taken[req.RequestID] || !req.IsMatchable(in.Now) {
				continue
			}
			if !matcher.Satisfies(tx, req) {
				continue
			}
			matched, err := domain.MatchRequest(req, tx.TransactionID, domain.MatchAuto, domain.SystemActorID, in.Now)
			if err != nil {
				continue
			}
			taken[req.RequestID] = true
			tx.Matched = true
			matches = append(matches, Match{Transaction: tx, Request: matched})
			break
		}
	}
	return matches
}
