package domain

// SyntheticAccount is a classification category owned by an account.
//
// The relation slices are nil unless the matching relation was expanded,
// so "no sub-accounts" and "sub-accounts not requested" stay distinguishable.
type SyntheticAccount struct {
	ID               int32              `json:"id"`
	Number           int32              `json:"number"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	AccountID        int32              `json:"accountId"`
	SubAccounts      []SubAccount       `json:"subAccounts,omitempty"`
	ByDebitAccounts  []SyntheticAccount `json:"byDebitAccounts,omitempty"`
	ByCreditAccounts []SyntheticAccount `json:"byCreditAccounts,omitempty"`
}

// CreateSyntheticAccountParams is the input data to create a synthetic account.
//
// DebitPeerIDs are stored as links with this account on the debit side,
// CreditPeerIDs as links with this account on the credit side.
type CreateSyntheticAccountParams struct {
	Number        int32
	Title         string
	Description   string
	AccountID     int32
	DebitPeerIDs  []int32
	CreditPeerIDs []int32
}

// UpdateSyntheticAccountParams holds the synthetic account fields to change.
//
// A non-nil peer list replaces every link on that side.
type UpdateSyntheticAccountParams struct {
	Number        *int32
	Title         *string
	Description   *string
	AccountID     *int32
	DebitPeerIDs  *[]int32
	CreditPeerIDs *[]int32
}

// Apply copies the supplied scalar fields onto s.
func (p UpdateSyntheticAccountParams) Apply(s *SyntheticAccount) {
	if p.Number != nil {
		s.Number = *p.Number
	}
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.AccountID != nil {
		s.AccountID = *p.AccountID
	}
}
