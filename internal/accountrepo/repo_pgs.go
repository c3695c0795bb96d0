// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"

	"github.com/lib/pq"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getQuery = `
SELECT 
	id, title
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Title,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.NotFound(domain.EntityAccount, id)
		}

		return domain.Account{}, dbpkg.Internal(ctx, err)
	}

	return a, nil
}

const listQuery = `
SELECT 
	id, title
FROM accounts
ORDER BY id
`

// List returns all accounts in id order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Title); err != nil {
			return nil, dbpkg.Internal(ctx, err)
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}

	if err := rows.Err(); err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}

	return items, nil
}

const createQuery = `
INSERT INTO 
    accounts (title)
VALUES
    ($1)
RETURNING id, title
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, createQuery, arg.Title)

	var a domain.Account

	if err := row.Scan(&a.ID, &a.Title); err != nil {
		return domain.Account{}, dbpkg.Internal(ctx, err)
	}

	return a, nil
}

const saveQuery = `
UPDATE accounts
SET title = $2
WHERE id = $1
RETURNING id, title
`

// Save persists the fields of a and returns the stored account.
func (r *RepoPGS) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, saveQuery, a.ID, a.Title)

	var saved domain.Account

	if err := row.Scan(&saved.ID, &saved.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.NotFound(domain.EntityAccount, a.ID)
		}

		return domain.Account{}, dbpkg.Internal(ctx, err)
	}

	return saved, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "synthetic_accounts_account_id_fkey" {
			return domain.ConstraintViolation(domain.EntitySyntheticAccount, "accountId")
		}

		return dbpkg.Internal(ctx, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return dbpkg.Internal(ctx, err)
	}

	if n == 0 {
		return domain.NotFound(domain.EntityAccount, id)
	}

	return nil
}
