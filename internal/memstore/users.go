package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// UserRepo keeps user records in memory.
type UserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

// NewUserRepo returns an empty UserRepo.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[uuid.UUID]domain.User{}}
}

// Create stores a new user with a fresh id.
func (r *UserRepo) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == arg.Email {
			return domain.User{}, domain.ConstraintViolation(domain.EntityUser, "email")
		}
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:             uuid.New(),
		Email:          arg.Email,
		Name:           arg.Name,
		HashedPassword: arg.HashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.users[u.ID] = u

	return u, nil
}

// Get returns the user with the given id.
func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, &domain.Error{Kind: domain.ErrNotFound, Entity: domain.EntityUser, Field: "id"}
	}

	return u, nil
}
