// Package subaccountservice manages business logic layer of sub-accounts.
package subaccountservice

import (
	"context"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/expand"
	"github.com/go-petr/pet-ledger/internal/projection"
)

const entity = domain.EntitySubAccount

// Service facilitates sub-account service layer logic.
type Service struct {
	store domain.Store
}

// New returns sub-account service struct to manage sub-account business logic.
func New(store domain.Store) *Service {
	return &Service{store: store}
}

// GetOne returns the sub-account with the given id projected through view.
func (s *Service) GetOne(ctx context.Context, id int32, relations []string, view projection.View) (projection.Object, error) {
	rels, err := domain.ParseRelations(entity, relations)
	if err != nil {
		return nil, err
	}

	if err := projection.Check(entity, view, rels); err != nil {
		return nil, err
	}

	sub, err := expand.New(s.store).SubAccount(ctx, id, rels)
	if err != nil {
		return nil, err
	}

	return projection.SubAccount(sub, view)
}

// GetAll returns every sub-account projected through view.
func (s *Service) GetAll(ctx context.Context, relations []string, view projection.View) ([]projection.Object, error) {
	rels, err := domain.ParseRelations(entity, relations)
	if err != nil {
		return nil, err
	}

	if err := projection.Check(entity, view, rels); err != nil {
		return nil, err
	}

	subs, err := expand.New(s.store).SubAccounts(ctx, rels)
	if err != nil {
		return nil, err
	}

	return projection.SubAccounts(subs, view)
}

// Create creates and returns the sub-account.
func (s *Service) Create(ctx context.Context, arg domain.CreateSubAccountParams) (projection.Object, error) {
	var created domain.SubAccount

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		if err := checkSyntheticAccount(ctx, q, arg.SyntheticAccountID); err != nil {
			return err
		}

		if err := checkNumber(ctx, q, arg.SyntheticAccountID, arg.Number, 0); err != nil {
			return err
		}

		var err error
		created, err = q.SubAccounts().Create(ctx, arg)

		return err
	})
	if err != nil {
		return nil, err
	}

	return projection.SubAccount(created, projection.ViewDefault)
}

// Update changes the supplied fields of the sub-account.
func (s *Service) Update(ctx context.Context, id int32, arg domain.UpdateSubAccountParams) (projection.Object, error) {
	var saved domain.SubAccount

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		sub, err := q.SubAccounts().Get(ctx, id)
		if err != nil {
			return err
		}

		arg.Apply(&sub)

		if arg.SyntheticAccountID != nil {
			if err := checkSyntheticAccount(ctx, q, sub.SyntheticAccountID); err != nil {
				return err
			}
		}

		if arg.SyntheticAccountID != nil || arg.Number != nil {
			if err := checkNumber(ctx, q, sub.SyntheticAccountID, sub.Number, id); err != nil {
				return err
			}
		}

		saved, err = q.SubAccounts().Save(ctx, sub)

		return err
	})
	if err != nil {
		return nil, err
	}

	return projection.SubAccount(saved, projection.ViewDefault)
}

// Delete removes the sub-account.
func (s *Service) Delete(ctx context.Context, id int32) (projection.Object, error) {
	var deleted domain.SubAccount

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		var err error

		deleted, err = q.SubAccounts().Get(ctx, id)
		if err != nil {
			return err
		}

		return q.SubAccounts().Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return projection.SubAccount(deleted, projection.ViewDefault)
}

func checkSyntheticAccount(ctx context.Context, q domain.Queries, id int32) error {
	if _, err := q.SyntheticAccounts().Get(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return domain.ReferenceNotFound(entity, "syntheticAccountId", id)
		}

		return err
	}

	return nil
}

func checkNumber(ctx context.Context, q domain.Queries, syntheticAccountID, number, exceptID int32) error {
	taken, err := q.SubAccounts().NumberTaken(ctx, syntheticAccountID, number, exceptID)
	if err != nil {
		return err
	}

	if taken {
		return domain.ConstraintViolation(entity, "number")
	}

	return nil
}
