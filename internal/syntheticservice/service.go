// Package syntheticservice manages business logic layer of synthetic accounts.
package syntheticservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/expand"
	"github.com/go-petr/pet-ledger/internal/projection"
)

const entity = domain.EntitySyntheticAccount

// Service facilitates synthetic account service layer logic.
type Service struct {
	store domain.Store
}

// New returns synthetic account service struct to manage synthetic account business logic.
func New(store domain.Store) *Service {
	return &Service{store: store}
}

// GetOne returns the synthetic account with the given id, expanded with relations and projected through view.
func (s *Service) GetOne(ctx context.Context, id int32, relations []string, view projection.View) (projection.Object, error) {
	rels, err := domain.ParseRelations(entity, relations)
	if err != nil {
		return nil, err
	}

	if err := projection.Check(entity, view, rels); err != nil {
		return nil, err
	}

	account, err := expand.New(s.store).SyntheticAccount(ctx, id, rels)
	if err != nil {
		return nil, err
	}

	return projection.SyntheticAccount(account, view)
}

// GetAll returns every synthetic account, expanded with relations and projected through view.
func (s *Service) GetAll(ctx context.Context, relations []string, view projection.View) ([]projection.Object, error) {
	rels, err := domain.ParseRelations(entity, relations)
	if err != nil {
		return nil, err
	}

	if err := projection.Check(entity, view, rels); err != nil {
		return nil, err
	}

	accounts, err := expand.New(s.store).SyntheticAccounts(ctx, rels)
	if err != nil {
		return nil, err
	}

	return projection.SyntheticAccounts(accounts, view)
}

// Find returns the synthetic account with the given id, or nil when it does not exist.
func (s *Service) Find(ctx context.Context, id int32, relations []string) (*domain.SyntheticAccount, error) {
	rels, err := domain.ParseRelations(entity, relations)
	if err != nil {
		return nil, err
	}

	return expand.Maybe(expand.New(s.store).SyntheticAccount(ctx, id, rels))
}

// Create creates the synthetic account together with its links.
func (s *Service) Create(ctx context.Context, arg domain.CreateSyntheticAccountParams) (projection.Object, error) {
	debitPeers, err := domain.NormalizePeers(0, domain.LinkSideDebit, arg.DebitPeerIDs)
	if err != nil {
		return nil, err
	}

	creditPeers, err := domain.NormalizePeers(0, domain.LinkSideCredit, arg.CreditPeerIDs)
	if err != nil {
		return nil, err
	}

	var created domain.SyntheticAccount

	err = s.store.ExecTx(ctx, func(q domain.Queries) error {
		if err := checkAccount(ctx, q, arg.AccountID); err != nil {
			return err
		}

		if err := checkNumber(ctx, q, arg.AccountID, arg.Number, 0); err != nil {
			return err
		}

		created, err = q.SyntheticAccounts().Create(ctx, arg)
		if err != nil {
			return err
		}

		if err := replaceLinks(ctx, q, created.ID, domain.LinkSideDebit, debitPeers); err != nil {
			return err
		}

		return replaceLinks(ctx, q, created.ID, domain.LinkSideCredit, creditPeers)
	})
	if err != nil {
		return nil, err
	}

	return projection.SyntheticAccount(created, projection.ViewDefault)
}

// Update changes the supplied fields of the synthetic account.
//
// A supplied peer list replaces all links on its side.
func (s *Service) Update(ctx context.Context, id int32, arg domain.UpdateSyntheticAccountParams) (projection.Object, error) {
	var debitPeers, creditPeers []int32

	if arg.DebitPeerIDs != nil {
		peers, err := domain.NormalizePeers(id, domain.LinkSideDebit, *arg.DebitPeerIDs)
		if err != nil {
			return nil, err
		}

		debitPeers = peers
	}

	if arg.CreditPeerIDs != nil {
		peers, err := domain.NormalizePeers(id, domain.LinkSideCredit, *arg.CreditPeerIDs)
		if err != nil {
			return nil, err
		}

		creditPeers = peers
	}

	var saved domain.SyntheticAccount

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		current, err := q.SyntheticAccounts().Get(ctx, id)
		if err != nil {
			return err
		}

		next := current
		arg.Apply(&next)

		if arg.AccountID != nil {
			if err := checkAccount(ctx, q, next.AccountID); err != nil {
				return err
			}
		}

		if arg.AccountID != nil || arg.Number != nil {
			if err := checkNumber(ctx, q, next.AccountID, next.Number, id); err != nil {
				return err
			}
		}

		saved, err = q.SyntheticAccounts().Save(ctx, next)
		if err != nil {
			return err
		}

		if arg.DebitPeerIDs != nil {
			if err := replaceLinks(ctx, q, id, domain.LinkSideDebit, debitPeers); err != nil {
				return err
			}
		}

		if arg.CreditPeerIDs != nil {
			if err := replaceLinks(ctx, q, id, domain.LinkSideCredit, creditPeers); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return projection.SyntheticAccount(saved, projection.ViewDefault)
}

// Delete removes the synthetic account with its sub-accounts and every link touching it.
func (s *Service) Delete(ctx context.Context, id int32) (projection.Object, error) {
	var deleted domain.SyntheticAccount

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		var err error

		deleted, err = q.SyntheticAccounts().Get(ctx, id)
		if err != nil {
			return err
		}

		return Cascade(ctx, q, id)
	})
	if err != nil {
		return nil, err
	}

	return projection.SyntheticAccount(deleted, projection.ViewDefault)
}

// Cascade deletes the links, the sub-accounts and then the synthetic account itself.
// It must run inside a unit of work.
func Cascade(ctx context.Context, q domain.Queries, id int32) error {
	l := zerolog.Ctx(ctx)

	if err := q.Links().DeleteByAccount(ctx, id); err != nil {
		return err
	}

	if err := q.SubAccounts().DeleteBySyntheticAccount(ctx, id); err != nil {
		return err
	}

	if err := q.SyntheticAccounts().Delete(ctx, id); err != nil {
		return err
	}

	l.Debug().Int32("synthetic_account_id", id).Msg("synthetic account deleted")

	return nil
}

func checkAccount(ctx context.Context, q domain.Queries, accountID int32) error {
	if _, err := q.Accounts().Get(ctx, accountID); err != nil {
		if domain.IsNotFound(err) {
			return domain.ReferenceNotFound(entity, "accountId", accountID)
		}

		return err
	}

	return nil
}

func checkNumber(ctx context.Context, q domain.Queries, accountID, number, exceptID int32) error {
	taken, err := q.SyntheticAccounts().NumberTaken(ctx, accountID, number, exceptID)
	if err != nil {
		return err
	}

	if taken {
		return domain.ConstraintViolation(entity, "number")
	}

	return nil
}

func replaceLinks(ctx context.Context, q domain.Queries, id int32, side domain.LinkSide, peers []int32) error {
	for _, peer := range peers {
		if _, err := q.SyntheticAccounts().Get(ctx, peer); err != nil {
			if domain.IsNotFound(err) {
				return domain.ReferenceNotFound(entity, domain.PeerField(side), peer)
			}

			return err
		}
	}

	return q.Links().Replace(ctx, id, side, peers)
}
