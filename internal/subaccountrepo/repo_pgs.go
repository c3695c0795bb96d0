// Package subaccountrepo manages repository layer of sub-accounts.
package subaccountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"

	"github.com/lib/pq"
)

// RepoPGS facilitates sub-account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns sub-account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const columns = `id, number, title, description, synthetic_account_id`

func scan(row interface{ Scan(dest ...any) error }) (domain.SubAccount, error) {
	var s domain.SubAccount

	err := row.Scan(
		&s.ID,
		&s.Number,
		&s.Title,
		&s.Description,
		&s.SyntheticAccountID,
	)

	return s, err
}

func mapWriteError(ctx context.Context, err error, syntheticAccountID int32) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "sub_accounts_synthetic_account_id_fkey":
			return domain.ReferenceNotFound(domain.EntitySubAccount, "syntheticAccountId", syntheticAccountID)
		case "sub_accounts_synthetic_account_id_number_key":
			return domain.ConstraintViolation(domain.EntitySubAccount, "number")
		}
	}

	return dbpkg.Internal(ctx, err)
}

const getQuery = `
SELECT ` + columns + `
FROM sub_accounts
WHERE id = $1
`

// Get returns the sub-account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.SubAccount, error) {
	s, err := scan(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SubAccount{}, domain.NotFound(domain.EntitySubAccount, id)
		}

		return domain.SubAccount{}, dbpkg.Internal(ctx, err)
	}

	return s, nil
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...any) ([]domain.SubAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}
	defer rows.Close()

	items := []domain.SubAccount{}

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
FROM sub_accounts
ORDER BY id
`

// List returns all sub-accounts in id order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.SubAccount, error) {
	return r.list(ctx, listQuery)
}

const listBySyntheticAccountQuery = `
SELECT ` + columns + `
FROM sub_accounts
WHERE synthetic_account_id = $1
ORDER BY id
`

// ListBySyntheticAccount returns the sub-accounts owned by the synthetic account.
func (r *RepoPGS) ListBySyntheticAccount(ctx context.Context, syntheticAccountID int32) ([]domain.SubAccount, error) {
	return r.list(ctx, listBySyntheticAccountQuery, syntheticAccountID)
}

const numberTakenQuery = `
SELECT EXISTS (
	SELECT 1 FROM sub_accounts
	WHERE synthetic_account_id = $1 AND number = $2 AND id <> $3
)
`

// NumberTaken reports whether another sub-account of the synthetic account uses number.
func (r *RepoPGS) NumberTaken(ctx context.Context, syntheticAccountID, number, exceptID int32) (bool, error) {
	var taken bool

	if err := r.db.QueryRowContext(ctx, numberTakenQuery, syntheticAccountID, number, exceptID).Scan(&taken); err != nil {
		return false, dbpkg.Internal(ctx, err)
	}

	return taken, nil
}

const createQuery = `
INSERT INTO
    sub_accounts (number, title, description, synthetic_account_id)
VALUES
    ($1, $2, $3, $4)
RETURNING ` + columns

// Create creates the sub-account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSubAccountParams) (domain.SubAccount, error) {
	row := r.db.QueryRowContext(ctx, createQuery, arg.Number, arg.Title, arg.Description, arg.SyntheticAccountID)

	s, err := scan(row)
	if err != nil {
		return domain.SubAccount{}, mapWriteError(ctx, err, arg.SyntheticAccountID)
	}

	return s, nil
}

const saveQuery = `
UPDATE sub_accounts
SET number = $2, title = $3, description = $4, synthetic_account_id = $5
WHERE id = $1
RETURNING ` + columns

// Save persists the fields of s and returns the stored sub-account.
func (r *RepoPGS) Save(ctx context.Context, s domain.SubAccount) (domain.SubAccount, error) {
	row := r.db.QueryRowContext(ctx, saveQuery, s.ID, s.Number, s.Title, s.Description, s.SyntheticAccountID)

	saved, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SubAccount{}, domain.NotFound(domain.EntitySubAccount, s.ID)
		}

		return domain.SubAccount{}, mapWriteError(ctx, err, s.SyntheticAccountID)
	}

	return saved, nil
}

const deleteQuery = `
DELETE FROM sub_accounts
WHERE id = $1
`

// Delete removes the sub-account with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return dbpkg.Internal(ctx, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return dbpkg.Internal(ctx, err)
	}

	if n == 0 {
		return domain.NotFound(domain.EntitySubAccount, id)
	}

	return nil
}

const deleteBySyntheticAccountQuery = `
DELETE FROM sub_accounts
WHERE synthetic_account_id = $1
`

// DeleteBySyntheticAccount removes every sub-account of the synthetic account.
func (r *RepoPGS) DeleteBySyntheticAccount(ctx context.Context, syntheticAccountID int32) error {
	if _, err := r.db.ExecContext(ctx, deleteBySyntheticAccountQuery, syntheticAccountID); err != nil {
		return dbpkg.Internal(ctx, err)
	}

	return nil
}
