package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// fast-fails before any service call:
//   - the external user id must be present (presence proves the middleware ran).
//   - an unrecognized role claim is normalized to the plain user role, never
//     escalated.
func ctxIdentity(c echo.Context) (clerkUserID, role string, err error) {
	clerkUserID, _ = c.Get(middleware.CtxClerkUserID).(string)
	if clerkUserID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ = c.Get(middleware.CtxRole).(string)
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	return clerkUserID, role, nil
}
