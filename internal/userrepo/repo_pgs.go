// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
)

// ErrUserNotFound indicates that the user id does not resolve.
var ErrUserNotFound = &domain.Error{Kind: domain.ErrNotFound, Entity: domain.EntityUser, Field: "id"}

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// CreateQuery inserts into users table.
const CreateQuery = `
INSERT INTO users (
    id,
    email,
    name,
    password
) VALUES (
    $1, $2, $3, $4
) RETURNING id, email, COALESCE(name, ''), password, created_at, updated_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	var name sql.NullString
	if arg.Name != "" {
		name = sql.NullString{String: arg.Name, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, CreateQuery,
		uuid.New(),
		arg.Email,
		name,
		arg.HashedPassword,
	)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.HashedPassword,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "users_email_key" {
			return domain.User{}, domain.ConstraintViolation(domain.EntityUser, "email")
		}

		return domain.User{}, dbpkg.Internal(ctx, err)
	}

	return u, nil
}

const getQuery = `
SELECT 
	id,
	email,
	COALESCE(name, ''),
	password,
	created_at,
	updated_at
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, getQuery, id)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.HashedPassword,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, dbpkg.Internal(ctx, err)
	}

	return u, nil
}
