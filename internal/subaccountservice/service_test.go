package subaccountservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/memstore"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/internal/test"
)

func TestCreate(t *testing.T) {
	store := memstore.New()
	account := test.SeedAccount(t, store)
	s := test.SeedSyntheticAccount(t, store, account.ID, 10)
	ctx := context.Background()

	testCases := []struct {
		name    string
		arg     domain.CreateSubAccountParams
		wantErr error
	}{
		{
			name: "OK",
			arg:  domain.CreateSubAccountParams{Number: 1, Title: "Petty cash", SyntheticAccountID: s.ID},
		},
		{
			name:    "MissingSyntheticAccount",
			arg:     domain.CreateSubAccountParams{Number: 2, Title: "Lost", SyntheticAccountID: 9999},
			wantErr: domain.ErrReferenceNotFound,
		},
		{
			name:    "NumberTaken",
			arg:     domain.CreateSubAccountParams{Number: 1, Title: "Twin", SyntheticAccountID: s.ID},
			wantErr: domain.ErrConstraintViolation,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got, err := New(store).Create(ctx, tc.arg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				subs, err := store.SubAccounts().List(ctx)
				require.NoError(t, err)
				require.Len(t, subs, 1, "failed create left a partial write")

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.arg.Title, got["title"])
			require.Equal(t, s.ID, got["syntheticAccountId"])
		})
	}
}

func TestGet(t *testing.T) {
	store := memstore.New()
	account := test.SeedAccount(t, store)
	s := test.SeedSyntheticAccount(t, store, account.ID, 10)
	sub := test.SeedSubAccount(t, store, s.ID, 1)
	service := New(store)
	ctx := context.Background()

	got, err := service.GetOne(ctx, sub.ID, nil, projection.ViewDefault)
	require.NoError(t, err)
	require.Equal(t, projection.Object{
		"id":                 sub.ID,
		"number":             sub.Number,
		"title":              sub.Title,
		"description":        sub.Description,
		"syntheticAccountId": s.ID,
	}, got)

	all, err := service.GetAll(ctx, nil, projection.ViewDefault)
	require.NoError(t, err)
	require.Equal(t, []projection.Object{got}, all)

	_, err = service.GetOne(ctx, sub.ID, []string{"subAccounts"}, projection.ViewDefault)
	require.ErrorIs(t, err, domain.ErrInvalidRelation)

	_, err = service.GetOne(ctx, 9999, nil, projection.ViewDefault)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	store := memstore.New()
	account := test.SeedAccount(t, store)
	s := test.SeedSyntheticAccount(t, store, account.ID, 10)
	other := test.SeedSyntheticAccount(t, store, account.ID, 20)
	sub := test.SeedSubAccount(t, store, s.ID, 1)
	test.SeedSubAccount(t, store, other.ID, 1)
	service := New(store)
	ctx := context.Background()

	before, err := service.GetOne(ctx, sub.ID, nil, projection.ViewDefault)
	require.NoError(t, err)

	got, err := service.Update(ctx, sub.ID, domain.UpdateSubAccountParams{})
	require.NoError(t, err)
	require.Equal(t, before, got)

	_, err = service.Update(ctx, sub.ID, domain.UpdateSubAccountParams{SyntheticAccountID: &other.ID})
	require.ErrorIs(t, err, domain.ErrConstraintViolation)

	missing := int32(9999)
	_, err = service.Update(ctx, sub.ID, domain.UpdateSubAccountParams{SyntheticAccountID: &missing})
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)

	number := int32(2)
	got, err = service.Update(ctx, sub.ID, domain.UpdateSubAccountParams{SyntheticAccountID: &other.ID, Number: &number})
	require.NoError(t, err)
	require.Equal(t, other.ID, got["syntheticAccountId"])

	deleted, err := service.Delete(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, got, deleted)

	_, err = service.Delete(ctx, sub.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
