// Package expand fetches chart-of-accounts entities with a requested set of relations attached.
//
// Every requested relation costs one extra lookup per base entity. Relations that were not
// requested stay nil on the returned entity; requested relations are never nil.
package expand

import (
	"context"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Fetcher loads entities and their requested relations from the collaborator store.
type Fetcher struct {
	q domain.Queries
}

// New returns a Fetcher reading through q.
func New(q domain.Queries) *Fetcher {
	return &Fetcher{q: q}
}

// Maybe turns a NotFound failure into an absent result.
func Maybe[T any](v T, err error) (*T, error) {
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &v, nil
}

func validate(entity domain.Entity, rels domain.RelationSet) error {
	names := make([]string, 0, len(rels))
	for _, r := range rels.Sorted() {
		names = append(names, string(r))
	}

	_, err := domain.ParseRelations(entity, names)

	return err
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}

// Account returns the account with the given id and rels attached.
func (f *Fetcher) Account(ctx context.Context, id int32, rels domain.RelationSet) (domain.Account, error) {
	if err := validate(domain.EntityAccount, rels); err != nil {
		return domain.Account{}, err
	}

	a, err := f.q.Accounts().Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if err := f.expandAccount(ctx, &a, rels); err != nil {
		return domain.Account{}, err
	}

	return a, nil
}

// Accounts returns all accounts in store order with rels attached to each.
func (f *Fetcher) Accounts(ctx context.Context, rels domain.RelationSet) ([]domain.Account, error) {
	if err := validate(domain.EntityAccount, rels); err != nil {
		return nil, err
	}

	accounts, err := f.q.Accounts().List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if err := f.expandAccount(ctx, &accounts[i], rels); err != nil {
			return nil, err
		}
	}

	return orEmpty(accounts), nil
}

func (f *Fetcher) expandAccount(ctx context.Context, a *domain.Account, rels domain.RelationSet) error {
	if rels.Has(domain.RelationSyntheticAccounts) {
		items, err := f.q.SyntheticAccounts().ListByAccount(ctx, a.ID)
		if err != nil {
			return err
		}

		a.SyntheticAccounts = orEmpty(items)
	}

	return nil
}

// SyntheticAccount returns the synthetic account with the given id and rels attached.
func (f *Fetcher) SyntheticAccount(ctx context.Context, id int32, rels domain.RelationSet) (domain.SyntheticAccount, error) {
	if err := validate(domain.EntitySyntheticAccount, rels); err != nil {
		return domain.SyntheticAccount{}, err
	}

	s, err := f.q.SyntheticAccounts().Get(ctx, id)
	if err != nil {
		return domain.SyntheticAccount{}, err
	}

	if err := f.expandSyntheticAccount(ctx, &s, rels); err != nil {
		return domain.SyntheticAccount{}, err
	}

	return s, nil
}

// SyntheticAccounts returns all synthetic accounts in store order with rels attached to each.
func (f *Fetcher) SyntheticAccounts(ctx context.Context, rels domain.RelationSet) ([]domain.SyntheticAccount, error) {
	if err := validate(domain.EntitySyntheticAccount, rels); err != nil {
		return nil, err
	}

	items, err := f.q.SyntheticAccounts().List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if err := f.expandSyntheticAccount(ctx, &items[i], rels); err != nil {
			return nil, err
		}
	}

	return orEmpty(items), nil
}

func (f *Fetcher) expandSyntheticAccount(ctx context.Context, s *domain.SyntheticAccount, rels domain.RelationSet) error {
	if rels.Has(domain.RelationSubAccounts) {
		subs, err := f.q.SubAccounts().ListBySyntheticAccount(ctx, s.ID)
		if err != nil {
			return err
		}

		s.SubAccounts = orEmpty(subs)
	}

	if rels.Has(domain.RelationByDebitAccounts) {
		peers, err := f.q.SyntheticAccounts().ListLinked(ctx, s.ID, domain.LinkSideDebit)
		if err != nil {
			return err
		}

		s.ByDebitAccounts = orEmpty(peers)
	}

	if rels.Has(domain.RelationByCreditAccounts) {
		peers, err := f.q.SyntheticAccounts().ListLinked(ctx, s.ID, domain.LinkSideCredit)
		if err != nil {
			return err
		}

		s.ByCreditAccounts = orEmpty(peers)
	}

	return nil
}

// SubAccount returns the sub-account with the given id. Sub-accounts have no relations.
func (f *Fetcher) SubAccount(ctx context.Context, id int32, rels domain.RelationSet) (domain.SubAccount, error) {
	if err := validate(domain.EntitySubAccount, rels); err != nil {
		return domain.SubAccount{}, err
	}

	return f.q.SubAccounts().Get(ctx, id)
}

// SubAccounts returns all sub-accounts in store order.
func (f *Fetcher) SubAccounts(ctx context.Context, rels domain.RelationSet) ([]domain.SubAccount, error) {
	if err := validate(domain.EntitySubAccount, rels); err != nil {
		return nil, err
	}

	items, err := f.q.SubAccounts().List(ctx)
	if err != nil {
		return nil, err
	}

	return orEmpty(items), nil
}
