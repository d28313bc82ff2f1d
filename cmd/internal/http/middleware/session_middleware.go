package middleware

import (
	"net/http"
	"strings"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const LoginPath = "/login"

type Session interface {
	Authenticated() bool
	Logout() error
}

type SessionMiddlewareConfig struct {
	Session Session

	// Public paths are served without a session.
	Public []string
}

// NewSessionMiddleware gates every non-public route behind the manager
// session. Browsers navigating to a page are sent to the login screen, API
// calls get a 401. A 401 coming back from the backend ends the session.
func NewSessionMiddleware(cfg *SessionMiddlewareConfig) echo.MiddlewareFunc {
	public := make(map[string]bool, len(cfg.Public))
	for _, p := range cfg.Public {
		public[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if public[c.Path()] || public[c.Request().URL.Path] {
				return next(c)
			}

			if !cfg.Session.Authenticated() {
				if wantsHTML(c.Request()) {
					return c.Redirect(http.StatusFound, LoginPath)
				}
				return c.JSON(http.StatusUnauthorized, apierror.UnauthorizedError)
			}

			err := next(c)
			if c.Response().Status == http.StatusUnauthorized {
				if lerr := cfg.Session.Logout(); lerr != nil {
					log.Errorf("failed to end rejected session: %v", lerr)
				}
			}
			return err
		}
	}
}

func wantsHTML(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
