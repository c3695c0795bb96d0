// Package web defines common components for a web application.
package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// Status maps an error returned by the service layer to an HTTP status and a response.
//
// Errors outside the domain taxonomy are reported as internal without their details.
func Status(err error) (int, Response) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, Error(err)
	case errors.Is(err, domain.ErrReferenceNotFound),
		errors.Is(err, domain.ErrInvalidRelation),
		errors.Is(err, domain.ErrInvalidView),
		errors.Is(err, domain.ErrInvalidLink):
		return http.StatusBadRequest, Error(err)
	case errors.Is(err, domain.ErrConstraintViolation):
		return http.StatusConflict, Error(err)
	}

	return http.StatusInternalServerError, Error(errorspkg.ErrInternal)
}

// GetErrorMsg returns a readable message for the first failed validation.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return ""
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "uuid":
		return fe.Field() + " must be a valid uuid"
	case "relations":
		return fe.Field() + " contains an unknown relation"
	}

	return fe.Field() + " is invalid"
}

// BindError returns the response for a request that failed binding or validation.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return Response{Error: GetErrorMsg(ve)}
	}

	return Error(err)
}
