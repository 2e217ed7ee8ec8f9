package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Session for downstream handlers.
const (
	CtxClerkUserID = "clerk_user_id"
	CtxRole        = "role"
)

// sessionClaims is the shape of the identity provider's session token. The
// role lives at exactly one claim path, metadata.role; reading it anywhere
// else is a defect.
type sessionClaims struct {
	Metadata struct {
		Role string `json:"role"`
	} `json:"metadata"`
	jwt.RegisteredClaims
}

// Session validates the identity provider's session JWT and injects the
// external user id and role into context. Role resolution happens here, once,
// and is passed down; handlers never rederive it.
func Session(signingSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := &sessionClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(signingSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "session token missing subject")
			}

			c.Set(CtxClerkUserID, claims.Subject)
			c.Set(CtxRole, claims.Metadata.Role)

			return next(c)
		}
	}
}
