package domain

// ClubAccount is the real bank account holding a club's fund.
type ClubAccount struct {
	AccountID     string `json:"accountID"`
	ClubID        string `json:"clubID"`
	BankCode      string `json:"bankCode"` // Selects the bank gateway
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
	AuditFields
}
