// Package memstore provides an in-memory transactional collaborator store.
//
// It enforces the same references and unique numbers as the PostgreSQL schema, so
// services behave identically on either backend.
package memstore

import (
	"context"
	"sync"

	"github.com/go-petr/pet-ledger/internal/domain"
)

type state struct {
	accounts  []domain.Account
	synthetic []domain.SyntheticAccount
	subs      []domain.SubAccount
	links     []domain.Link

	nextAccountID   int32
	nextSyntheticID int32
	nextSubID       int32
}

func (st *state) clone() *state {
	c := *st
	c.accounts = append([]domain.Account(nil), st.accounts...)
	c.synthetic = append([]domain.SyntheticAccount(nil), st.synthetic...)
	c.subs = append([]domain.SubAccount(nil), st.subs...)
	c.links = append([]domain.Link(nil), st.links...)

	return &c
}

// Store keeps the chart of accounts in memory. Rows are kept in insertion order.
type Store struct {
	mu sync.Mutex
	st *state
}

// New returns an empty Store.
func New() *Store {
	return &Store{st: &state{}}
}

// ExecTx runs fn with exclusive access to the store and restores the previous state when fn fails.
func (s *Store) ExecTx(ctx context.Context, fn func(q domain.Queries) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()

	if err := fn(&queries{store: s, inTx: true}); err != nil {
		s.st = snapshot
		return err
	}

	return nil
}

// Accounts returns the account repository outside of any unit of work.
func (s *Store) Accounts() domain.AccountRepo { return accountRepo{&queries{store: s}} }

// SyntheticAccounts returns the synthetic account repository outside of any unit of work.
func (s *Store) SyntheticAccounts() domain.SyntheticAccountRepo {
	return syntheticRepo{&queries{store: s}}
}

// SubAccounts returns the sub-account repository outside of any unit of work.
func (s *Store) SubAccounts() domain.SubAccountRepo { return subRepo{&queries{store: s}} }

// Links returns the link repository outside of any unit of work.
func (s *Store) Links() domain.LinkRepo { return linkRepo{&queries{store: s}} }

type queries struct {
	store *Store
	inTx  bool
}

func (q *queries) Accounts() domain.AccountRepo                   { return accountRepo{q} }
func (q *queries) SyntheticAccounts() domain.SyntheticAccountRepo { return syntheticRepo{q} }
func (q *queries) SubAccounts() domain.SubAccountRepo             { return subRepo{q} }
func (q *queries) Links() domain.LinkRepo                         { return linkRepo{q} }

func (q *queries) run(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !q.inTx {
		q.store.mu.Lock()
		defer q.store.mu.Unlock()
	}

	return fn(q.store.st)
}

func (st *state) accountIndex(id int32) int {
	for i, a := range st.accounts {
		if a.ID == id {
			return i
		}
	}

	return -1
}

func (st *state) syntheticIndex(id int32) int {
	for i, s := range st.synthetic {
		if s.ID == id {
			return i
		}
	}

	return -1
}

func (st *state) subIndex(id int32) int {
	for i, s := range st.subs {
		if s.ID == id {
			return i
		}
	}

	return -1
}
