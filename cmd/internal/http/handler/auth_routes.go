package handler

import (
	"context"
	"net/http"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, error)
	Logout() error
}

type NotificationFeed interface {
	Drain() []notify.Notification
}

type DefaultAuthRoute struct {
	AuthService AuthService
	Feed        NotificationFeed
}

func NewAuthRoute(authService AuthService, feed NotificationFeed) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService, Feed: feed}
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, err := a.AuthService.Login(c.Request().Context(), &req)
	if err != nil {
		if apierror.KindOf(err) == apierror.KindUnauthorized {
			return respondAPIError(c, apierror.CredentialsMismatchError)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) Logout(c echo.Context) error {
	if err := a.AuthService.Logout(); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetNotifications hands the pending toasts to the browser, each one exactly once.
func (a *DefaultAuthRoute) GetNotifications(c echo.Context) error {
	resp := echo.Map{"notificacoes": a.Feed.Drain()}
	return c.JSON(http.StatusOK, &resp)
}
