package expand

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/memstore"
	"github.com/go-petr/pet-ledger/internal/test"
)

// countingQueries counts the store lookups made through it.
type countingQueries struct {
	domain.Queries
	calls int
}

func (c *countingQueries) Accounts() domain.AccountRepo {
	c.calls++
	return c.Queries.Accounts()
}

func (c *countingQueries) SyntheticAccounts() domain.SyntheticAccountRepo {
	c.calls++
	return c.Queries.SyntheticAccounts()
}

func (c *countingQueries) SubAccounts() domain.SubAccountRepo {
	c.calls++
	return c.Queries.SubAccounts()
}

func (c *countingQueries) Links() domain.LinkRepo {
	c.calls++
	return c.Queries.Links()
}

func seedChart(t *testing.T) (*memstore.Store, domain.Account, domain.SyntheticAccount, domain.SyntheticAccount) {
	t.Helper()

	store := memstore.New()
	account := test.SeedAccount(t, store)
	cash := test.SeedSyntheticAccount(t, store, account.ID, 50)
	bank := test.SeedSyntheticAccount(t, store, account.ID, 51)
	test.SeedSubAccount(t, store, cash.ID, 1)
	test.SeedLink(t, store, cash.ID, bank.ID)

	return store, account, cash, bank
}

func TestAccountRelations(t *testing.T) {
	store, account, cash, bank := seedChart(t)
	f := New(store)

	got, err := f.Account(context.Background(), account.ID, domain.NewRelationSet())
	require.NoError(t, err)
	require.Nil(t, got.SyntheticAccounts)

	got, err = f.Account(context.Background(), account.ID, domain.NewRelationSet(domain.RelationSyntheticAccounts))
	require.NoError(t, err)
	require.Len(t, got.SyntheticAccounts, 2)
	require.Equal(t, cash.ID, got.SyntheticAccounts[0].ID)
	require.Equal(t, bank.ID, got.SyntheticAccounts[1].ID)
}

func TestSyntheticAccountLinkSymmetry(t *testing.T) {
	store, _, cash, bank := seedChart(t)
	f := New(store)
	all := domain.NewRelationSet(domain.RelationSubAccounts, domain.RelationByDebitAccounts, domain.RelationByCreditAccounts)

	gotCash, err := f.SyntheticAccount(context.Background(), cash.ID, all)
	require.NoError(t, err)
	require.Len(t, gotCash.SubAccounts, 1)
	require.Len(t, gotCash.ByDebitAccounts, 1)
	require.Equal(t, bank.ID, gotCash.ByDebitAccounts[0].ID)
	require.NotNil(t, gotCash.ByCreditAccounts)
	require.Empty(t, gotCash.ByCreditAccounts)

	gotBank, err := f.SyntheticAccount(context.Background(), bank.ID, all)
	require.NoError(t, err)
	require.NotNil(t, gotBank.SubAccounts)
	require.Empty(t, gotBank.SubAccounts)
	require.Empty(t, gotBank.ByDebitAccounts)
	require.Len(t, gotBank.ByCreditAccounts, 1)
	require.Equal(t, cash.ID, gotBank.ByCreditAccounts[0].ID)
}

func TestSyntheticAccountsCostOneLookupPerRelation(t *testing.T) {
	store, _, _, _ := seedChart(t)
	q := &countingQueries{Queries: store}

	items, err := New(q).SyntheticAccounts(context.Background(),
		domain.NewRelationSet(domain.RelationSubAccounts, domain.RelationByDebitAccounts))
	require.NoError(t, err)
	require.Len(t, items, 2)

	// one list plus two relations for each of the two entities
	require.Equal(t, 1+2*2, q.calls)
}

func TestInvalidRelationBeforeStoreAccess(t *testing.T) {
	q := &countingQueries{}

	_, err := New(q).SyntheticAccounts(context.Background(), domain.NewRelationSet("owner"))
	require.True(t, errors.Is(err, domain.ErrInvalidRelation))
	require.Zero(t, q.calls)

	_, err = New(q).SubAccount(context.Background(), 1, domain.NewRelationSet(domain.RelationSubAccounts))
	require.True(t, errors.Is(err, domain.ErrInvalidRelation))
	require.Zero(t, q.calls)
}

func TestNotFound(t *testing.T) {
	f := New(memstore.New())

	_, err := f.Account(context.Background(), 404, domain.NewRelationSet())
	require.True(t, domain.IsNotFound(err))

	_, err = f.SyntheticAccount(context.Background(), 404, domain.NewRelationSet())
	require.True(t, domain.IsNotFound(err))

	_, err = f.SubAccount(context.Background(), 404, domain.NewRelationSet())
	require.True(t, domain.IsNotFound(err))
}

func TestEmptyStoreListsAreEmpty(t *testing.T) {
	f := New(memstore.New())

	accounts, err := f.Accounts(context.Background(), domain.NewRelationSet())
	require.NoError(t, err)
	require.NotNil(t, accounts)
	require.Empty(t, accounts)

	subs, err := f.SubAccounts(context.Background(), domain.NewRelationSet())
	require.NoError(t, err)
	require.NotNil(t, subs)
	require.Empty(t, subs)
}

func TestMaybe(t *testing.T) {
	store, account, _, _ := seedChart(t)
	f := New(store)

	got, err := Maybe(f.Account(context.Background(), account.ID, domain.NewRelationSet()))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, account.ID, got.ID)

	got, err = Maybe(f.Account(context.Background(), 404, domain.NewRelationSet()))
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = Maybe(f.Account(context.Background(), account.ID, domain.NewRelationSet("owner")))
	require.True(t, errors.Is(err, domain.ErrInvalidRelation))
}
