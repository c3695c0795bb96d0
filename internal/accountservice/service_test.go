package accountservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/memstore"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/internal/test"
)

func TestCreateAndGet(t *testing.T) {
	store := memstore.New()
	service := New(store)
	ctx := context.Background()

	created, err := service.Create(ctx, domain.CreateAccountParams{Title: "Assets"})
	require.NoError(t, err)
	require.Equal(t, projection.Object{"id": int32(1), "title": "Assets"}, created)

	got, err := service.GetOne(ctx, 1, []string{"syntheticAccounts"}, projection.ViewWithSynthetic)
	require.NoError(t, err)
	require.Equal(t, []projection.Object{}, got["syntheticAccounts"])

	all, err := service.GetAll(ctx, nil, projection.ViewDefault)
	require.NoError(t, err)
	require.Equal(t, []projection.Object{created}, all)
}

func TestGetOneErrors(t *testing.T) {
	service := New(memstore.New())
	ctx := context.Background()

	_, err := service.GetOne(ctx, 404, nil, projection.ViewDefault)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.GetOne(ctx, 1, nil, projection.ViewWithSynthetic)
	require.ErrorIs(t, err, domain.ErrInvalidView)

	_, err = New(nil).GetOne(ctx, 1, []string{"subAccounts"}, projection.ViewDefault)
	require.ErrorIs(t, err, domain.ErrInvalidRelation)
}

func TestUpdate(t *testing.T) {
	store := memstore.New()
	account := test.SeedAccount(t, store)
	service := New(store)
	ctx := context.Background()

	got, err := service.Update(ctx, account.ID, domain.UpdateAccountParams{})
	require.NoError(t, err)
	require.Equal(t, account.Title, got["title"])

	title := "Liabilities"
	got, err = service.Update(ctx, account.ID, domain.UpdateAccountParams{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, got["title"])

	_, err = service.Update(ctx, 404, domain.UpdateAccountParams{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	account := test.SeedAccount(t, store)
	other := test.SeedAccount(t, store)
	s := test.SeedSyntheticAccount(t, store, account.ID, 10)
	peer := test.SeedSyntheticAccount(t, store, other.ID, 10)
	test.SeedSubAccount(t, store, s.ID, 1)
	test.SeedSubAccount(t, store, s.ID, 2)
	test.SeedLink(t, store, s.ID, peer.ID)

	deleted, err := New(store).Delete(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, account.ID, deleted["id"])

	_, err = store.Accounts().Get(ctx, account.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.SyntheticAccounts().Get(ctx, s.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	subs, err := store.SubAccounts().List(ctx)
	require.NoError(t, err)
	require.Empty(t, subs)

	links, err := store.Links().ListByEndpoint(ctx, peer.ID, domain.LinkSideCredit)
	require.NoError(t, err)
	require.Empty(t, links)

	remaining, err := store.SyntheticAccounts().Get(ctx, peer.ID)
	require.NoError(t, err)
	require.Equal(t, peer.ID, remaining.ID)
}

func TestDeleteNotFound(t *testing.T) {
	_, err := New(memstore.New()).Delete(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
