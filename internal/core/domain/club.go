package domain

// ClubType selects how a club accounts for its money.
type ClubType string

const (
	// FairSettlement clubs attribute ledger entries to events and refund leftovers per person.
	FairSettlement ClubType = "FAIR_SETTLEMENT"
	// OperatingFee clubs keep a flat running fund without per-event attribution.
	OperatingFee ClubType = "OPERATING_FEE"
)

// Club is the tenant every other record is scoped to.
type Club struct {
	ClubID   string   `json:"clubID"`
	Name     string   `json:"name"`
	ClubType ClubType `json:"clubType"`
	AuditFields
}

// IsFairSettlement reports whether ledger entries of this club are attributed per event.
func (c Club) IsFairSettlement() bool {
	return c.ClubType == FairSettlement
}

// MemberStatus is the membership state of a member within a club.
type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
)

// Member is a person belonging to a club. RealName and Nickname are what shows up
// in bank transfer descriptions, so they drive automatic matching.
type Member struct {
	MemberID string       `json:"memberID"`
	ClubID   string       `json:"clubID"`
	UserID   *string      `json:"userID,omitempty"`
	RealName string       `json:"realName"`
	Nickname string       `json:"nickname"`
	Status   MemberStatus `json:"status"`
	AuditFields
}

// DisplayName is the name denormalized onto payment requests.
func (m Member) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	return m.RealName
}
