package memstore

import (
	"context"

	"github.com/go-petr/pet-ledger/internal/domain"
)

type accountRepo struct{ q *queries }

func (r accountRepo) Get(ctx context.Context, id int32) (domain.Account, error) {
	var a domain.Account

	err := r.q.run(ctx, func(st *state) error {
		i := st.accountIndex(id)
		if i < 0 {
			return domain.NotFound(domain.EntityAccount, id)
		}

		a = st.accounts[i]

		return nil
	})

	return a, err
}

func (r accountRepo) List(ctx context.Context) ([]domain.Account, error) {
	var items []domain.Account

	err := r.q.run(ctx, func(st *state) error {
		items = append([]domain.Account{}, st.accounts...)
		return nil
	})

	return items, err
}

func (r accountRepo) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	var a domain.Account

	err := r.q.run(ctx, func(st *state) error {
		st.nextAccountID++
		a = domain.Account{ID: st.nextAccountID, Title: arg.Title}
		st.accounts = append(st.accounts, a)

		return nil
	})

	return a, err
}

func (r accountRepo) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	err := r.q.run(ctx, func(st *state) error {
		i := st.accountIndex(a.ID)
		if i < 0 {
			return domain.NotFound(domain.EntityAccount, a.ID)
		}

		st.accounts[i] = domain.Account{ID: a.ID, Title: a.Title}

		return nil
	})

	return domain.Account{ID: a.ID, Title: a.Title}, err
}

func (r accountRepo) Delete(ctx context.Context, id int32) error {
	return r.q.run(ctx, func(st *state) error {
		i := st.accountIndex(id)
		if i < 0 {
			return domain.NotFound(domain.EntityAccount, id)
		}

		for _, s := range st.synthetic {
			if s.AccountID == id {
				return domain.ConstraintViolation(domain.EntitySyntheticAccount, "accountId")
			}
		}

		st.accounts = append(st.accounts[:i], st.accounts[i+1:]...)

		return nil
	})
}

type syntheticRepo struct{ q *queries }

func scalarSynthetic(s domain.SyntheticAccount) domain.SyntheticAccount {
	return domain.SyntheticAccount{
		ID:          s.ID,
		Number:      s.Number,
		Title:       s.Title,
		Description: s.Description,
		AccountID:   s.AccountID,
	}
}

func (st *state) checkSynthetic(s domain.SyntheticAccount) error {
	if st.accountIndex(s.AccountID) < 0 {
		return domain.ReferenceNotFound(domain.EntitySyntheticAccount, "accountId", s.AccountID)
	}

	for _, other := range st.synthetic {
		if other.ID != s.ID && other.AccountID == s.AccountID && other.Number == s.Number {
			return domain.ConstraintViolation(domain.EntitySyntheticAccount, "number")
		}
	}

	return nil
}

func (r syntheticRepo) Get(ctx context.Context, id int32) (domain.SyntheticAccount, error) {
	var s domain.SyntheticAccount

	err := r.q.run(ctx, func(st *state) error {
		i := st.syntheticIndex(id)
		if i < 0 {
			return domain.NotFound(domain.EntitySyntheticAccount, id)
		}

		s = st.synthetic[i]

		return nil
	})

	return s, err
}

func (r syntheticRepo) List(ctx context.Context) ([]domain.SyntheticAccount, error) {
	var items []domain.SyntheticAccount

	err := r.q.run(ctx, func(st *state) error {
		items = append([]domain.SyntheticAccount{}, st.synthetic...)
		return nil
	})

	return items, err
}

func (r syntheticRepo) ListByAccount(ctx context.Context, accountID int32) ([]domain.SyntheticAccount, error) {
	items := []domain.SyntheticAccount{}

	err := r.q.run(ctx, func(st *state) error {
		for _, s := range st.synthetic {
			if s.AccountID == accountID {
				items = append(items, s)
			}
		}

		return nil
	})

	return items, err
}

func (r syntheticRepo) ListLinked(ctx context.Context, id int32, side domain.LinkSide) ([]domain.SyntheticAccount, error) {
	items := []domain.SyntheticAccount{}

	err := r.q.run(ctx, func(st *state) error {
		for _, l := range st.links {
			if domain.NewLink(id, side, l.Peer(side)) != l {
				continue
			}

			if i := st.syntheticIndex(l.Peer(side)); i >= 0 {
				items = append(items, st.synthetic[i])
			}
		}

		return nil
	})

	return items, err
}

func (r syntheticRepo) NumberTaken(ctx context.Context, accountID, number, exceptID int32) (bool, error) {
	var taken bool

	err := r.q.run(ctx, func(st *state) error {
		for _, s := range st.synthetic {
			if s.ID != exceptID && s.AccountID == accountID && s.Number == number {
				taken = true
			}
		}

		return nil
	})

	return taken, err
}

func (r syntheticRepo) Create(ctx context.Context, arg domain.CreateSyntheticAccountParams) (domain.SyntheticAccount, error) {
	var s domain.SyntheticAccount

	err := r.q.run(ctx, func(st *state) error {
		s = domain.SyntheticAccount{
			Number:      arg.Number,
			Title:       arg.Title,
			Description: arg.Description,
			AccountID:   arg.AccountID,
		}

		if err := st.checkSynthetic(s); err != nil {
			return err
		}

		st.nextSyntheticID++
		s.ID = st.nextSyntheticID
		st.synthetic = append(st.synthetic, s)

		return nil
	})

	return s, err
}

func (r syntheticRepo) Save(ctx context.Context, s domain.SyntheticAccount) (domain.SyntheticAccount, error) {
	s = scalarSynthetic(s)

	err := r.q.run(ctx, func(st *state) error {
		i := st.syntheticIndex(s.ID)
		if i < 0 {
			return domain.NotFound(domain.EntitySyntheticAccount, s.ID)
		}

		if err := st.checkSynthetic(s); err != nil {
			return err
		}

		st.synthetic[i] = s

		return nil
	})

	return s, err
}

func (r syntheticRepo) Delete(ctx context.Context, id int32) error {
	return r.q.run(ctx, func(st *state) error {
		i := st.syntheticIndex(id)
		if i < 0 {
			return domain.NotFound(domain.EntitySyntheticAccount, id)
		}

		for _, sub := range st.subs {
			if sub.SyntheticAccountID == id {
				return domain.ConstraintViolation(domain.EntitySubAccount, "syntheticAccountId")
			}
		}

		for _, l := range st.links {
			if l.Touches(id) {
				return domain.ConstraintViolation(domain.EntitySyntheticAccount, "links")
			}
		}

		st.synthetic = append(st.synthetic[:i], st.synthetic[i+1:]...)

		return nil
	})
}

type subRepo struct{ q *queries }

func (st *state) checkSub(s domain.SubAccount) error {
	if st.syntheticIndex(s.SyntheticAccountID) < 0 {
		return domain.ReferenceNotFound(domain.EntitySubAccount, "syntheticAccountId", s.SyntheticAccountID)
	}

	for _, other := range st.subs {
		if other.ID != s.ID && other.SyntheticAccountID == s.SyntheticAccountID && other.Number == s.Number {
			return domain.ConstraintViolation(domain.EntitySubAccount, "number")
		}
	}

	return nil
}

func (r subRepo) Get(ctx context.Context, id int32) (domain.SubAccount, error) {
	var s domain.SubAccount

	err := r.q.run(ctx, func(st *state) error {
		i := st.subIndex(id)
		if i < 0 {
			return domain.NotFound(domain.EntitySubAccount, id)
		}

		s = st.subs[i]

		return nil
	})

	return s, err
}

func (r subRepo) List(ctx context.Context) ([]domain.SubAccount, error) {
	var items []domain.SubAccount

	err := r.q.run(ctx, func(st *state) error {
		items = append([]domain.SubAccount{}, st.subs...)
		return nil
	})

	return items, err
}

func (r subRepo) ListBySyntheticAccount(ctx context.Context, syntheticAccountID int32) ([]domain.SubAccount, error) {
	items := []domain.SubAccount{}

	err := r.q.run(ctx, func(st *state) error {
		for _, s := range st.subs {
			if s.SyntheticAccountID == syntheticAccountID {
				items = append(items, s)
			}
		}

		return nil
	})

	return items, err
}

func (r subRepo) NumberTaken(ctx context.Context, syntheticAccountID, number, exceptID int32) (bool, error) {
	var taken bool

	err := r.q.run(ctx, func(st *state) error {
		for _, s := range st.subs {
			if s.ID != exceptID && s.SyntheticAccountID == syntheticAccountID && s.Number == number {
				taken = true
			}
		}

		return nil
	})

	return taken, err
}

func (r subRepo) Create(ctx context.Context, arg domain.CreateSubAccountParams) (domain.SubAccount, error) {
	var s domain.SubAccount

	err := r.q.run(ctx, func(st *state) error {
		s = domain.SubAccount{
			Number:             arg.Number,
			Title:              arg.Title,
			Description:        arg.Description,
			SyntheticAccountID: arg.SyntheticAccountID,
		}

		if err := st.checkSub(s); err != nil {
			return err
		}

		st.nextSubID++
		s.ID = st.nextSubID
		st.subs = append(st.subs, s)

		return nil
	})

	return s, err
}

func (r subRepo) Save(ctx context.Context, s domain.SubAccount) (domain.SubAccount, error) {
	err := r.q.run(ctx, func(st *state) error {
		i := st.subIndex(s.ID)
		if i < 0 {
			return domain.NotFound(domain.EntitySubAccount, s.ID)
		}

		if err := st.checkSub(s); err != nil {
			return err
		}

		st.subs[i] = s

		return nil
	})

	return s, err
}

func (r subRepo) Delete(ctx context.Context, id int32) error {
	return r.q.run(ctx, func(st *state) error {
		i := st.subIndex(id)
		if i < 0 {
			return domain.NotFound(domain.EntitySubAccount, id)
		}

		st.subs = append(st.subs[:i], st.subs[i+1:]...)

		return nil
	})
}

func (r subRepo) DeleteBySyntheticAccount(ctx context.Context, syntheticAccountID int32) error {
	return r.q.run(ctx, func(st *state) error {
		kept := st.subs[:0]
		for _, s := range st.subs {
			if s.SyntheticAccountID != syntheticAccountID {
				kept = append(kept, s)
			}
		}

		st.subs = kept

		return nil
	})
}

type linkRepo struct{ q *queries }

func (r linkRepo) ListByEndpoint(ctx context.Context, accountID int32, side domain.LinkSide) ([]domain.Link, error) {
	items := []domain.Link{}

	err := r.q.run(ctx, func(st *state) error {
		for _, l := range st.links {
			if domain.NewLink(accountID, side, l.Peer(side)) == l {
				items = append(items, l)
			}
		}

		return nil
	})

	return items, err
}

func (r linkRepo) Replace(ctx context.Context, accountID int32, side domain.LinkSide, peerIDs []int32) error {
	return r.q.run(ctx, func(st *state) error {
		if st.syntheticIndex(accountID) < 0 {
			return domain.NotFound(domain.EntitySyntheticAccount, accountID)
		}

		want := make([]domain.Link, 0, len(peerIDs))

		for _, peer := range peerIDs {
			if peer == accountID {
				return &domain.Error{Kind: domain.ErrInvalidLink, Entity: domain.EntitySyntheticAccount,
					Field: domain.PeerField(side), ID: peer}
			}

			if st.syntheticIndex(peer) < 0 {
				return domain.ReferenceNotFound(domain.EntitySyntheticAccount, domain.PeerField(side), peer)
			}

			want = append(want, domain.NewLink(accountID, side, peer))
		}

		kept := make([]domain.Link, 0, len(st.links))
		for _, l := range st.links {
			if domain.NewLink(accountID, side, l.Peer(side)) != l {
				kept = append(kept, l)
			}
		}

		for _, l := range want {
			if !containsLink(kept, l) {
				kept = append(kept, l)
			}
		}

		st.links = kept

		return nil
	})
}

func (r linkRepo) DeleteByAccount(ctx context.Context, accountID int32) error {
	return r.q.run(ctx, func(st *state) error {
		kept := make([]domain.Link, 0, len(st.links))
		for _, l := range st.links {
			if !l.Touches(accountID) {
				kept = append(kept, l)
			}
		}

		st.links = kept

		return nil
	})
}

func containsLink(links []domain.Link, l domain.Link) bool {
	for _, other := range links {
		if other == l {
			return true
		}
	}

	return false
}
