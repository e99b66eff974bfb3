package hashmap

import (
	"errors"

	apperrors "cloudkitty-hashmap/internal/errors"
)

// notFound turns a not-found signal from the client into a command error
// naming the resource and the identifier that was looked up. id may be
// empty for calls that take no identifier. Other errors pass through.
func notFound(err error, resource, id string) error {
	if err == nil || !errors.Is(err, ErrNotFound) {
		return err
	}
	e := apperrors.NotFound(resource, id)
	e.Cause = err
	return e
}

// notFoundIn is notFound for listings scoped by a parent resource
func notFoundIn(err error, resource, parent, parentID string) error {
	if err == nil || !errors.Is(err, ErrNotFound) {
		return err
	}
	e := apperrors.Newf(apperrors.TypeNotFound, "%s not found for %s: %s", resource, parent, parentID)
	e.Cause = err
	return e
}
