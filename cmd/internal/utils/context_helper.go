package utils

import (
	"strconv"
	"strings"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// ParseIDParam reads a positive int64 path parameter.
func ParseIDParam(c echo.Context, name string) (int64, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, apierror.NewMissingParamError(name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.NewInvalidParamTypeError(name, "int64 > 0")
	}
	return id, nil
}

// IsConfirmed reports whether a destructive request carries confirm=true.
func IsConfirmed(c echo.Context) bool {
	ok, _ := strconv.ParseBool(c.QueryParam("confirm"))
	return ok
}
