// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/expand"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/internal/syntheticservice"
)

const entity = domain.EntityAccount

// Service facilitates account service layer logic.
type Service struct {
	store domain.Store
}

// New returns account service struct to manage account business logic.
func New(store domain.Store) *Service {
	return &Service{store: store}
}

// GetOne returns the account with the given id, expanded with relations and projected through view.
func (s *Service) GetOne(ctx context.Context, id int32, relations []string, view projection.View) (projection.Object, error) {
	rels, err := domain.ParseRelations(entity, relations)
	if err != nil {
		return nil, err
	}

	if err := projection.Check(entity, view, rels); err != nil {
		return nil, err
	}

	account, err := expand.New(s.store).Account(ctx, id, rels)
	if err != nil {
		return nil, err
	}

	return projection.Account(account, view)
}

// GetAll returns every account, expanded with relations and projected through view.
func (s *Service) GetAll(ctx context.Context, relations []string, view projection.View) ([]projection.Object, error) {
	rels, err := domain.ParseRelations(entity, relations)
	if err != nil {
		return nil, err
	}

	if err := projection.Check(entity, view, rels); err != nil {
		return nil, err
	}

	accounts, err := expand.New(s.store).Accounts(ctx, rels)
	if err != nil {
		return nil, err
	}

	return projection.Accounts(accounts, view)
}

// Create creates and returns the account.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (projection.Object, error) {
	account, err := s.store.Accounts().Create(ctx, arg)
	if err != nil {
		return nil, err
	}

	return projection.Account(account, projection.ViewDefault)
}

// Update changes the supplied fields of the account.
func (s *Service) Update(ctx context.Context, id int32, arg domain.UpdateAccountParams) (projection.Object, error) {
	var saved domain.Account

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		account, err := q.Accounts().Get(ctx, id)
		if err != nil {
			return err
		}

		arg.Apply(&account)

		saved, err = q.Accounts().Save(ctx, account)

		return err
	})
	if err != nil {
		return nil, err
	}

	return projection.Account(saved, projection.ViewDefault)
}

// Delete removes the account together with its synthetic accounts, their sub-accounts and links.
func (s *Service) Delete(ctx context.Context, id int32) (projection.Object, error) {
	l := zerolog.Ctx(ctx)

	var deleted domain.Account

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		var err error

		deleted, err = q.Accounts().Get(ctx, id)
		if err != nil {
			return err
		}

		owned, err := q.SyntheticAccounts().ListByAccount(ctx, id)
		if err != nil {
			return err
		}

		for _, sa := range owned {
			if err := syntheticservice.Cascade(ctx, q, sa.ID); err != nil {
				return err
			}
		}

		return q.Accounts().Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	l.Debug().Int32("account_id", id).Msg("account deleted")

	return projection.Account(deleted, projection.ViewDefault)
}
