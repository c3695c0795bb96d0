// Package domain provides definitions of all chart-of-accounts entities.
package domain

// Account is the top-level grouping that owns synthetic accounts.
//
// SyntheticAccounts is nil unless the syntheticAccounts relation was expanded.
type Account struct {
	ID                int32              `json:"id"`
	Title             string             `json:"title"`
	SyntheticAccounts []SyntheticAccount `json:"syntheticAccounts,omitempty"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Title string
}

// UpdateAccountParams holds the account fields to change. Nil fields are left as they are.
type UpdateAccountParams struct {
	Title *string
}

// Apply copies the supplied fields onto a.
func (p UpdateAccountParams) Apply(a *Account) {
	if p.Title != nil {
		a.Title = *p.Title
	}
}
