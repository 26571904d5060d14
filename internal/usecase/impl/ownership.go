package impl

import (
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"

	"github.com/pkg/errors"
)

// authorizeOwner allows the action only for the resource's owner. Callers load
// the resource first so a missing one is reported as 404 before any 403.
func authorizeOwner(user *entity.User, resource entity.Owned, action, kind string) error {
	if user == nil {
		return errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	if resource.OwnerID() != user.ID {
		return errors.WithStack(domainerrors.ErrForbidden.WithMessagef("User not authorized to %s this %s", action, kind))
	}

	return nil
}

// lookupError maps a repository lookup failure onto the domain error for the
// resource kind.
func lookupError(err error, notFound error, domainNotFound *domainerrors.BaseError, op string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return errors.WithStack(domainerrors.ErrInvalidID)
	case errors.Is(err, notFound):
		return errors.WithStack(domainNotFound)
	default:
		return errors.Wrap(err, op)
	}
}
