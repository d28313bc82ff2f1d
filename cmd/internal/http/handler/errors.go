package handler

import (
	"errors"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/service"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// toResponse maps whatever a service returned to the dashboard's error body.
func toResponse(c echo.Context, err error) apierror.ErrorResponse {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return apierror.FromValidationError(err)
	case errors.Is(err, service.ErrNotManager):
		return apierror.ManagerRoleRequiredError
	case optimistic.IsDiscarded(err):
		return apierror.ViewClosedError
	case apierror.KindOf(err) != "":
		return apierror.FromRemote(err)
	}

	log.Errorf("unexpected error on %s %s: %v", c.Request().Method, c.Path(), err)
	return apierror.InternalServerError
}

func respondError(c echo.Context, err error) error {
	apierr := toResponse(c, err)
	return c.JSON(apierr.Code(), apierr)
}

func respondAPIError(c echo.Context, apierr apierror.ErrorResponse) error {
	return c.JSON(apierr.Code(), apierr)
}
