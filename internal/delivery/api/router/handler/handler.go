// Package handler contains the echo handlers of the API.
package handler

import (
	"cookbook/internal/delivery/api/response"
	"cookbook/internal/delivery/api/validator"
	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// currentUser returns the bearer-authenticated user.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.GetUser(c)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return user, nil
}

// bindAndValidate binds the request body into req and validates it. A non-nil
// return has already been written or should be returned as-is.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BadRequest(c, "INVALID_INPUT", "Malformed request body")
	}

	if err := c.Validate(req); err != nil {
		if fields := validator.FieldErrors(err); fields != nil {
			return false, response.ValidationFailed(c, fields)
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}
