package test

import (
	"context"
	"testing"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

// SeedAccount creates a random account.
func SeedAccount(t *testing.T, q domain.Queries) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{Title: randompkg.Title()}

	account, err := q.Accounts().Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("Accounts().Create(ctx, %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedSyntheticAccount creates a synthetic account with the given number under accountID.
func SeedSyntheticAccount(t *testing.T, q domain.Queries, accountID, number int32) domain.SyntheticAccount {
	t.Helper()

	arg := domain.CreateSyntheticAccountParams{
		Number:      number,
		Title:       randompkg.Title(),
		Description: randompkg.String(20),
		AccountID:   accountID,
	}

	account, err := q.SyntheticAccounts().Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("SyntheticAccounts().Create(ctx, %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedSubAccount creates a sub-account with the given number under syntheticAccountID.
func SeedSubAccount(t *testing.T, q domain.Queries, syntheticAccountID, number int32) domain.SubAccount {
	t.Helper()

	arg := domain.CreateSubAccountParams{
		Number:             number,
		Title:              randompkg.Title(),
		Description:        randompkg.String(20),
		SyntheticAccountID: syntheticAccountID,
	}

	sub, err := q.SubAccounts().Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("SubAccounts().Create(ctx, %+v) returned error: %v", arg, err)
	}

	return sub
}

// SeedLink stores the link {debit: debitID, credit: creditID}.
func SeedLink(t *testing.T, q domain.Queries, debitID, creditID int32) {
	t.Helper()

	peers, err := q.Links().ListByEndpoint(context.Background(), debitID, domain.LinkSideDebit)
	if err != nil {
		t.Fatalf("Links().ListByEndpoint(ctx, %d, debit) returned error: %v", debitID, err)
	}

	ids := []int32{creditID}
	for _, l := range peers {
		ids = append(ids, l.CreditAccountID)
	}

	if err := q.Links().Replace(context.Background(), debitID, domain.LinkSideDebit, ids); err != nil {
		t.Fatalf("Links().Replace(ctx, %d, debit, %v) returned error: %v", debitID, ids, err)
	}
}
