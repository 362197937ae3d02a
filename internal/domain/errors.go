package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUnavailable         = errors.New("store unavailable")
)

// AuthContext is the identity resolved by the upstream credential check.
// The zero value is an anonymous caller.
type AuthContext struct {
	UserID uuid.UUID
}

func (a AuthContext) Authenticated() bool {
	return a.UserID != uuid.Nil
}
