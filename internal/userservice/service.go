// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New return user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Create hashes the password, stores the user and returns it without the password.
func (s *Service) Create(ctx context.Context, email, name, password string) (projection.Object, error) {
	l := zerolog.Ctx(ctx)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Email:          email,
		Name:           name,
		HashedPassword: hashedPassword,
	}

	user, err := s.repo.Create(ctx, arg)
	if err != nil {
		return nil, err
	}

	return projection.User(user, projection.ViewDefault)
}

// Get returns the user with the given id without the password.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (projection.Object, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return projection.User(user, projection.ViewDefault)
}
