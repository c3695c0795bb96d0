package domain

// SubAccount is a leaf posting target owned by a synthetic account.
type SubAccount struct {
	ID                 int32  `json:"id"`
	Number             int32  `json:"number"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	SyntheticAccountID int32  `json:"syntheticAccountId"`
}

// CreateSubAccountParams is the input data to create a sub-account.
type CreateSubAccountParams struct {
	Number             int32
	Title              string
	Description        string
	SyntheticAccountID int32
}

// UpdateSubAccountParams holds the sub-account fields to change. Nil fields are left as they are.
type UpdateSubAccountParams struct {
	Number             *int32
	Title              *string
	Description        *string
	SyntheticAccountID *int32
}

// Apply copies the supplied fields onto s.
func (p UpdateSubAccountParams) Apply(s *SubAccount) {
	if p.Number != nil {
		s.Number = *p.Number
	}
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.SyntheticAccountID != nil {
		s.SyntheticAccountID = *p.SyntheticAccountID
	}
}
