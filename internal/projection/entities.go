package projection

import (
	"github.com/go-petr/pet-ledger/internal/domain"
)

var accountFields = fields[domain.Account]{
	"id":    func(a domain.Account) any { return a.ID },
	"title": func(a domain.Account) any { return a.Title },
}

var syntheticFields = fields[domain.SyntheticAccount]{
	"id":          func(s domain.SyntheticAccount) any { return s.ID },
	"number":      func(s domain.SyntheticAccount) any { return s.Number },
	"title":       func(s domain.SyntheticAccount) any { return s.Title },
	"description": func(s domain.SyntheticAccount) any { return s.Description },
	"accountId":   func(s domain.SyntheticAccount) any { return s.AccountID },
}

var subFields = fields[domain.SubAccount]{
	"id":                 func(s domain.SubAccount) any { return s.ID },
	"number":             func(s domain.SubAccount) any { return s.Number },
	"title":              func(s domain.SubAccount) any { return s.Title },
	"description":        func(s domain.SubAccount) any { return s.Description },
	"syntheticAccountId": func(s domain.SubAccount) any { return s.SyntheticAccountID },
}

var userFields = fields[domain.User]{
	"id":        func(u domain.User) any { return u.ID.String() },
	"email":     func(u domain.User) any { return u.Email },
	"name":      func(u domain.User) any { return u.Name },
	"createdAt": func(u domain.User) any { return u.CreatedAt },
	"updatedAt": func(u domain.User) any { return u.UpdatedAt },
}

// Account projects a through view.
func Account(a domain.Account, view View) (Object, error) {
	spec, err := lookup(domain.EntityAccount, view)
	if err != nil {
		return nil, err
	}

	o := accountFields.pick(a, spec.fields)

	for _, r := range spec.relations {
		switch r {
		case domain.RelationSyntheticAccounts:
			if a.SyntheticAccounts == nil {
				return nil, notExpanded(domain.EntityAccount, r)
			}

			nested, err := SyntheticAccounts(a.SyntheticAccounts, ViewAtomic)
			if err != nil {
				return nil, err
			}

			o[string(r)] = nested
		}
	}

	return o, nil
}

// Accounts projects every account through view.
func Accounts(items []domain.Account, view View) ([]Object, error) {
	return many(items, view, Account)
}

// SyntheticAccount projects s through view.
func SyntheticAccount(s domain.SyntheticAccount, view View) (Object, error) {
	spec, err := lookup(domain.EntitySyntheticAccount, view)
	if err != nil {
		return nil, err
	}

	o := syntheticFields.pick(s, spec.fields)

	for _, r := range spec.relations {
		var (
			nested []Object
			err    error
		)

		switch r {
		case domain.RelationSubAccounts:
			if s.SubAccounts == nil {
				return nil, notExpanded(domain.EntitySyntheticAccount, r)
			}

			nested, err = SubAccounts(s.SubAccounts, ViewAtomic)
		case domain.RelationByDebitAccounts:
			if s.ByDebitAccounts == nil {
				return nil, notExpanded(domain.EntitySyntheticAccount, r)
			}

			nested, err = SyntheticAccounts(s.ByDebitAccounts, ViewAtomic)
		case domain.RelationByCreditAccounts:
			if s.ByCreditAccounts == nil {
				return nil, notExpanded(domain.EntitySyntheticAccount, r)
			}

			nested, err = SyntheticAccounts(s.ByCreditAccounts, ViewAtomic)
		}

		if err != nil {
			return nil, err
		}

		o[string(r)] = nested
	}

	return o, nil
}

// SyntheticAccounts projects every synthetic account through view.
func SyntheticAccounts(items []domain.SyntheticAccount, view View) ([]Object, error) {
	return many(items, view, SyntheticAccount)
}

// SubAccount projects s through view.
func SubAccount(s domain.SubAccount, view View) (Object, error) {
	spec, err := lookup(domain.EntitySubAccount, view)
	if err != nil {
		return nil, err
	}

	return subFields.pick(s, spec.fields), nil
}

// SubAccounts projects every sub-account through view.
func SubAccounts(items []domain.SubAccount, view View) ([]Object, error) {
	return many(items, view, SubAccount)
}

// User projects u through view. The password hash is in no view.
func User(u domain.User, view View) (Object, error) {
	spec, err := lookup(domain.EntityUser, view)
	if err != nil {
		return nil, err
	}

	return userFields.pick(u, spec.fields), nil
}
