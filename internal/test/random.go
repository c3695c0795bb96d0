// Package test provides shared test helpers.
package test

import (
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

// RandomAccount returns an account with random fields.
func RandomAccount() domain.Account {
	return domain.Account{
		ID:    randompkg.IntBetween(1, 100),
		Title: randompkg.Title(),
	}
}

// RandomSyntheticAccount returns a random synthetic account owned by accountID.
func RandomSyntheticAccount(accountID int32) domain.SyntheticAccount {
	return domain.SyntheticAccount{
		ID:          randompkg.IntBetween(1, 100),
		Number:      randompkg.Number(),
		Title:       randompkg.Title(),
		Description: randompkg.String(20),
		AccountID:   accountID,
	}
}

// RandomSubAccount returns a random sub-account owned by syntheticAccountID.
func RandomSubAccount(syntheticAccountID int32) domain.SubAccount {
	return domain.SubAccount{
		ID:                 randompkg.IntBetween(1, 100),
		Number:             randompkg.Number(),
		Title:              randompkg.Title(),
		Description:        randompkg.String(20),
		SyntheticAccountID: syntheticAccountID,
	}
}
