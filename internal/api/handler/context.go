package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: a missing role means the middleware
// never ran for this route, which is a wiring bug surfaced as 401.
func ctxClaims(c echo.Context) (role, subject string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	subject, _ = c.Get("subject").(string)
	if subject == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	return role, subject, nil
}
