// Package linkrepo manages repository layer of debit/credit links between synthetic accounts.
package linkrepo

import (
	"context"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"

	"github.com/lib/pq"
)

// RepoPGS facilitates link repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns link RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// columns returns the column holding the account on side and the one holding its peer.
func columns(side domain.LinkSide) (own, peer string) {
	if side == domain.LinkSideDebit {
		return "debit_account_id", "credit_account_id"
	}

	return "credit_account_id", "debit_account_id"
}

// ListByEndpoint returns the links where accountID sits on side.
func (r *RepoPGS) ListByEndpoint(ctx context.Context, accountID int32, side domain.LinkSide) ([]domain.Link, error) {
	own, peer := columns(side)

	query := `
SELECT debit_account_id, credit_account_id
FROM synthetic_account_links
WHERE ` + own + ` = $1
ORDER BY ` + peer

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}
	defer rows.Close()

	items := []domain.Link{}

	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.DebitAccountID, &l.CreditAccountID); err != nil {
			return nil, dbpkg.Internal(ctx, err)
		}

		items = append(items, l)
	}

	if err := rows.Close(); err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}

	if err := rows.Err(); err != nil {
		return nil, dbpkg.Internal(ctx, err)
	}

	return items, nil
}

// Replace makes peerIDs the exact set of peers of accountID on side.
//
// Run it inside a transaction; the delete and the insert are separate statements.
func (r *RepoPGS) Replace(ctx context.Context, accountID int32, side domain.LinkSide, peerIDs []int32) error {
	own, peer := columns(side)

	peers := make([]int64, len(peerIDs))
	for i, id := range peerIDs {
		peers[i] = int64(id)
	}

	deleteQuery := `
DELETE FROM synthetic_account_links
WHERE ` + own + ` = $1 AND ` + peer + ` <> ALL ($2::integer[])
`

	if _, err := r.db.ExecContext(ctx, deleteQuery, accountID, pq.Array(peers)); err != nil {
		return dbpkg.Internal(ctx, err)
	}

	if len(peers) == 0 {
		return nil
	}

	insertQuery := `
INSERT INTO synthetic_account_links (` + own + `, ` + peer + `)
SELECT $1, unnest($2::integer[])
ON CONFLICT DO NOTHING
`

	if _, err := r.db.ExecContext(ctx, insertQuery, accountID, pq.Array(peers)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "synthetic_account_links_check":
				return &domain.Error{Kind: domain.ErrInvalidLink, Entity: domain.EntitySyntheticAccount,
					Field: domain.PeerField(side), ID: accountID}
			case "synthetic_account_links_debit_account_id_fkey", "synthetic_account_links_credit_account_id_fkey":
				return &domain.Error{Kind: domain.ErrReferenceNotFound, Entity: domain.EntitySyntheticAccount,
					Field: domain.PeerField(side)}
			}
		}

		return dbpkg.Internal(ctx, err)
	}

	return nil
}

const deleteByAccountQuery = `
DELETE FROM synthetic_account_links
WHERE debit_account_id = $1 OR credit_account_id = $1
`

// DeleteByAccount removes every link touching accountID on either side.
func (r *RepoPGS) DeleteByAccount(ctx context.Context, accountID int32) error {
	if _, err := r.db.ExecContext(ctx, deleteByAccountQuery, accountID); err != nil {
		return dbpkg.Internal(ctx, err)
	}

	return nil
}
