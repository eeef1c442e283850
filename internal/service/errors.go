package service

import (
	"errors"

	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
)

// notFoundAs replaces a store not-found error with a domain one carrying msg.
// Other errors pass through.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound(msg).WithCause(err)
	}
	return err
}

// uniqueColumns returns the columns named by a unique violation.
func uniqueColumns(err error) ([]string, bool) {
	var se *store.Error
	if !errors.As(err, &se) || !errors.Is(se, store.ErrAlreadyExists) {
		return nil, false
	}
	return se.Fields, true
}

// requireAuthenticated rejects anonymous actors before any lookup so that
// writes to missing objects still answer 401.
func requireAuthenticated(actor domain.Actor) error {
	if !actor.Authenticated() {
		return domainerrors.Unauthorized("authentication credentials were not provided")
	}
	return nil
}
