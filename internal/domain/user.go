package domain

import (
	"time"

	"github.com/google/uuid"
)

// User holds user record data. HashedPassword never leaves the service layer unprojected.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Email          string
	Name           string
	HashedPassword string
}
