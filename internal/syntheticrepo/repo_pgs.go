// Package syntheticrepo manages repository layer of synthetic accounts.
package syntheticrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"

	"github.com/lib/pq"
)

// RepoPGS facilitates synthetic account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns synthetic account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const columns = `id, number, title, description, account_id`

func scan(row interface{ Scan(dest ...any) error }) (domain.SyntheticAccount, error) {
	var s domain.SyntheticAccount

	err := row.Scan(
		&s.ID,
		&s.Number,
		&s.Title,
		&s.Description,
		&s.AccountID,
	)

	return s, err
}

func mapWriteError(ctx context.Context, err error, s domain.SyntheticAccount) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "synthetic_accounts_account_id_fkey":
			return domain.ReferenceNotFound(domain.EntitySyntheticAccount, "accountId", s.AccountID)
		case "synthetic_accounts_account_id_number_key":
			return domain.ConstraintViolation(domain.EntitySyntheticAccount, "number")
		}
	}

	return dbpkg.Internal(ctx, err)
}

const getQuery = `
SELECT ` + columns + `
FROM synthetic_accounts
WHERE id = $1
`

// Get returns the synthetic account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.SyntheticAccount, error) {
	s, err := scan(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SyntheticAccount{}, domain.NotFound(domain.EntitySyntheticAccount, id)
		}

		return domain.SyntheticAccount{}, dbpkg.Internal(ctx, err)
	}

	return s, nil
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...any) ([]domain.SyntheticAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}
	defer rows.Close()

	items := []domain.SyntheticAccount{}

	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, dbpkg.Internal(ctx, err)
		}

		items = append(items, s)
	}

	if err := rows.Close(); err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}

	if err := rows.Err(); err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}

	return items, nil
}

const listQuery = `
SELECT ` + columns + `
FROM synthetic_accounts
ORDER BY id
`

// List returns all synthetic accounts in id order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.SyntheticAccount, error) {
	return r.list(ctx, listQuery)
}

const listByAccountQuery = `
SELECT ` + columns + `
FROM synthetic_accounts
WHERE account_id = $1
ORDER BY id
`

// ListByAccount returns the synthetic accounts owned by the account.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int32) ([]domain.SyntheticAccount, error) {
	return r.list(ctx, listByAccountQuery, accountID)
}

const listDebitPeersQuery = `
SELECT s.id, s.number, s.title, s.description, s.account_id
FROM synthetic_account_links l
JOIN synthetic_accounts s ON s.id = l.credit_account_id
WHERE l.debit_account_id = $1
ORDER BY s.id
`

const listCreditPeersQuery = `
SELECT s.id, s.number, s.title, s.description, s.account_id
FROM synthetic_account_links l
JOIN synthetic_accounts s ON s.id = l.debit_account_id
WHERE l.credit_account_id = $1
ORDER BY s.id
`

// ListLinked returns the peers of the links where id sits on side.
func (r *RepoPGS) ListLinked(ctx context.Context, id int32, side domain.LinkSide) ([]domain.SyntheticAccount, error) {
	if side == domain.LinkSideDebit {
		return r.list(ctx, listDebitPeersQuery, id)
	}

	return r.list(ctx, listCreditPeersQuery, id)
}

const numberTakenQuery = `
SELECT EXISTS (
	SELECT 1 FROM synthetic_accounts
	WHERE account_id = $1 AND number = $2 AND id <> $3
)
`

// NumberTaken reports whether another synthetic account of the account uses number.
func (r *RepoPGS) NumberTaken(ctx context.Context, accountID, number, exceptID int32) (bool, error) {
	var taken bool

	if err := r.db.QueryRowContext(ctx, numberTakenQuery, accountID, number, exceptID).Scan(&taken); err != nil {
		return false, dbpkg.Internal(ctx, err)
	}

	return taken, nil
}

const createQuery = `
INSERT INTO
    synthetic_accounts (number, title, description, account_id)
VALUES
    ($1, $2, $3, $4)
RETURNING ` + columns

// Create creates the synthetic account and then returns it. Links are stored separately.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSyntheticAccountParams) (domain.SyntheticAccount, error) {
	row := r.db.QueryRowContext(ctx, createQuery, arg.Number, arg.Title, arg.Description, arg.AccountID)

	s, err := scan(row)
	if err != nil {
		return domain.SyntheticAccount{}, mapWriteError(ctx, err, domain.SyntheticAccount{AccountID: arg.AccountID})
	}

	return s, nil
}

const saveQuery = `
UPDATE synthetic_accounts
SET number = $2, title = $3, description = $4, account_id = $5
WHERE id = $1
RETURNING ` + columns

// Save persists the scalar fields of s and returns the stored synthetic account.
func (r *RepoPGS) Save(ctx context.Context, s domain.SyntheticAccount) (domain.SyntheticAccount, error) {
	row := r.db.QueryRowContext(ctx, saveQuery, s.ID, s.Number, s.Title, s.Description, s.AccountID)

	saved, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SyntheticAccount{}, domain.NotFound(domain.EntitySyntheticAccount, s.ID)
		}

		return domain.SyntheticAccount{}, mapWriteError(ctx, err, s)
	}

	return saved, nil
}

const deleteQuery = `
DELETE FROM synthetic_accounts
WHERE id = $1
`

// Delete removes the synthetic account with the given id.
//
// Owned sub-accounts and links must be removed first.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "sub_accounts_synthetic_account_id_fkey":
				return domain.ConstraintViolation(domain.EntitySubAccount, "syntheticAccountId")
			case "synthetic_account_links_debit_account_id_fkey", "synthetic_account_links_credit_account_id_fkey":
				return domain.ConstraintViolation(domain.EntitySyntheticAccount, "links")
			}
		}

		return dbpkg.Internal(ctx, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return dbpkg.Internal(ctx, err)
	}

	if n == 0 {
		return domain.NotFound(domain.EntitySyntheticAccount, id)
	}

	return nil
}
