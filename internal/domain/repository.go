package domain

import "context"

// AccountRepo is the collaborator store for accounts.
type AccountRepo interface {
	Get(ctx context.Context, id int32) (Account, error)
	List(ctx context.Context) ([]Account, error)
	Create(ctx context.Context, arg CreateAccountParams) (Account, error)
	Save(ctx context.Context, a Account) (Account, error)
	Delete(ctx context.Context, id int32) error
}

// SyntheticAccountRepo is the collaborator store for synthetic accounts.
type SyntheticAccountRepo interface {
	Get(ctx context.Context, id int32) (SyntheticAccount, error)
	List(ctx context.Context) ([]SyntheticAccount, error)
	ListByAccount(ctx context.Context, accountID int32) ([]SyntheticAccount, error)
	// ListLinked returns the peers of the links where id sits on side.
	ListLinked(ctx context.Context, id int32, side LinkSide) ([]SyntheticAccount, error)
	// NumberTaken reports whether another synthetic account of accountID uses number.
	NumberTaken(ctx context.Context, accountID, number, exceptID int32) (bool, error)
	Create(ctx context.Context, arg CreateSyntheticAccountParams) (SyntheticAccount, error)
	Save(ctx context.Context, s SyntheticAccount) (SyntheticAccount, error)
	Delete(ctx context.Context, id int32) error
}

// SubAccountRepo is the collaborator store for sub-accounts.
type SubAccountRepo interface {
	Get(ctx context.Context, id int32) (SubAccount, error)
	List(ctx context.Context) ([]SubAccount, error)
	ListBySyntheticAccount(ctx context.Context, syntheticAccountID int32) ([]SubAccount, error)
	// NumberTaken reports whether another sub-account of syntheticAccountID uses number.
	NumberTaken(ctx context.Context, syntheticAccountID, number, exceptID int32) (bool, error)
	Create(ctx context.Context, arg CreateSubAccountParams) (SubAccount, error)
	Save(ctx context.Context, s SubAccount) (SubAccount, error)
	Delete(ctx context.Context, id int32) error
	DeleteBySyntheticAccount(ctx context.Context, syntheticAccountID int32) error
}

// LinkRepo is the collaborator store for debit/credit link records.
type LinkRepo interface {
	ListByEndpoint(ctx context.Context, accountID int32, side LinkSide) ([]Link, error)
	// Replace makes peerIDs the exact set of peers of accountID on side.
	Replace(ctx context.Context, accountID int32, side LinkSide, peerIDs []int32) error
	// DeleteByAccount removes every link touching accountID on either side.
	DeleteByAccount(ctx context.Context, accountID int32) error
}

// Queries groups the collaborator stores reachable within one unit of work.
type Queries interface {
	Accounts() AccountRepo
	SyntheticAccounts() SyntheticAccountRepo
	SubAccounts() SubAccountRepo
	Links() LinkRepo
}

// Store runs queries directly or inside an atomic unit.
//
// Every write of fn commits together, or none does when fn returns an error.
type Store interface {
	Queries
	ExecTx(ctx context.Context, fn func(q Queries) error) error
}
