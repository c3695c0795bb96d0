// Package storepgs composes the PostgreSQL repositories into a transactional collaborator store.
package storepgs

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/linkrepo"
	"github.com/go-petr/pet-ledger/internal/subaccountrepo"
	"github.com/go-petr/pet-ledger/internal/syntheticrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
)

type queries struct {
	db dbpkg.SQLInterface
}

func (q queries) Accounts() domain.AccountRepo { return accountrepo.NewRepoPGS(q.db) }

func (q queries) SyntheticAccounts() domain.SyntheticAccountRepo { return syntheticrepo.NewRepoPGS(q.db) }

func (q queries) SubAccounts() domain.SubAccountRepo { return subaccountrepo.NewRepoPGS(q.db) }

func (q queries) Links() domain.LinkRepo { return linkrepo.NewRepoPGS(q.db) }

// Store runs repository queries on a connection pool or inside one database transaction.
type Store struct {
	queries
	conn *sql.DB
}

// New returns Store over conn.
func New(conn *sql.DB) *Store {
	return &Store{
		queries: queries{db: conn},
		conn:    conn,
	}
}

// ExecTx executes fn within a database transaction.
//
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) ExecTx(ctx context.Context, fn func(q domain.Queries) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return dbpkg.Internal(ctx, err)
	}

	if err := fn(queries{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Msg("rollback failed")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return dbpkg.Internal(ctx, err)
	}

	return nil
}
