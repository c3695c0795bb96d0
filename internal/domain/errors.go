package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates that the requested id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrReferenceNotFound indicates that a supplied foreign-key id does not resolve.
	ErrReferenceNotFound = errors.New("reference not found")
	// ErrInvalidRelation indicates a relation name outside the entity's vocabulary.
	ErrInvalidRelation = errors.New("invalid relation")
	// ErrInvalidView indicates an unknown view or a view whose relations were not expanded.
	ErrInvalidView = errors.New("invalid view")
	// ErrInvalidLink indicates a malformed or self-referential link request.
	ErrInvalidLink = errors.New("invalid link")
	// ErrConstraintViolation indicates that the store rejected a write.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Error is a typed failure carrying the offending entity, field and id.
//
// It unwraps to one of the sentinel kinds above.
type Error struct {
	Kind   error
	Entity Entity
	Field  string
	ID     int32
	Name   string
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Kind.Error())

	if e.Entity != "" {
		fmt.Fprintf(&sb, ": %s", e.Entity)
	}

	if e.Field != "" {
		fmt.Fprintf(&sb, " %s", e.Field)
	}

	if e.ID != 0 {
		fmt.Fprintf(&sb, " %d", e.ID)
	}

	if e.Name != "" {
		fmt.Fprintf(&sb, " %q", e.Name)
	}

	return sb.String()
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound returns ErrNotFound for the entity id.
func NotFound(entity Entity, id int32) error {
	return &Error{Kind: ErrNotFound, Entity: entity, Field: "id", ID: id}
}

// ReferenceNotFound returns ErrReferenceNotFound for the foreign-key field of entity.
func ReferenceNotFound(entity Entity, field string, id int32) error {
	return &Error{Kind: ErrReferenceNotFound, Entity: entity, Field: field, ID: id}
}

// ConstraintViolation returns ErrConstraintViolation for the field of entity.
func ConstraintViolation(entity Entity, field string) error {
	return &Error{Kind: ErrConstraintViolation, Entity: entity, Field: field}
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
