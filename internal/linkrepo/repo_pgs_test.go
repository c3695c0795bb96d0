package linkrepo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
)

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewRepoPGS(db), mock
}

func TestListByEndpoint(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM synthetic_account_links WHERE credit_account_id = \$1 ORDER BY debit_account_id`).
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"debit_account_id", "credit_account_id"}).AddRow(2, 5).AddRow(3, 5))

	got, err := repo.ListByEndpoint(context.Background(), 5, domain.LinkSideCredit)
	require.NoError(t, err)
	require.Equal(t, []domain.Link{{DebitAccountID: 2, CreditAccountID: 5}, {DebitAccountID: 3, CreditAccountID: 5}}, got)
}

func TestReplace(t *testing.T) {
	testCases := []struct {
		name       string
		side       domain.LinkSide
		peers      []int32
		buildStubs func(mock sqlmock.Sqlmock)
		wantErr    error
	}{
		{
			name:  "DebitSide",
			side:  domain.LinkSideDebit,
			peers: []int32{2, 3},
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM synthetic_account_links WHERE debit_account_id = \$1 AND credit_account_id <> ALL`).
					WithArgs(int32(1), pq.Array([]int64{2, 3})).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO synthetic_account_links \(debit_account_id, credit_account_id\)`).
					WithArgs(int32(1), pq.Array([]int64{2, 3})).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name: "EmptyClearsSide",
			side: domain.LinkSideCredit,
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM synthetic_account_links WHERE credit_account_id = \$1 AND debit_account_id <> ALL`).
					WithArgs(int32(1), pq.Array([]int64{})).
					WillReturnResult(sqlmock.NewResult(0, 3))
			},
		},
		{
			name:  "SelfLink",
			side:  domain.LinkSideCredit,
			peers: []int32{1},
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM synthetic_account_links`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO synthetic_account_links \(credit_account_id, debit_account_id\)`).
					WillReturnError(&pq.Error{Code: "23514", Constraint: "synthetic_account_links_check"})
			},
			wantErr: domain.ErrInvalidLink,
		},
		{
			name:  "MissingPeer",
			side:  domain.LinkSideDebit,
			peers: []int32{99},
			buildStubs: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM synthetic_account_links`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO synthetic_account_links`).
					WillReturnError(&pq.Error{Code: "23503", Constraint: "synthetic_account_links_credit_account_id_fkey"})
			},
			wantErr: domain.ErrReferenceNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)
			tc.buildStubs(mock)

			err := repo.Replace(context.Background(), 1, tc.side, tc.peers)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestDeleteByAccount(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM synthetic_account_links WHERE debit_account_id = \$1 OR credit_account_id = \$1`).
		WithArgs(int32(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteByAccount(context.Background(), 4))
}
