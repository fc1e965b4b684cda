package middleware

import (
	"net/http"

	"github.com/alimikegami/storefront-service/internal/auth"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/alimikegami/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RequireAdmin rejects requests without admin capability before the handler runs.
func RequireAdmin(authorizer *auth.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authorizer.IsAdmin(c.Request()) {
				log.Ctx(c.Request().Context()).Warn().Str("component", "RequireAdmin").
					Str("endpoint", c.Request().URL.Path).Msg("unauthorized admin request")
				return response.WriteErrorResponse(c, errs.ErrUnauthorized, nil)
			}
			return next(c)
		}
	}
}

// PageGate redirects visitors of protected pages to the login page unless they are admins.
func PageGate(authorizer *auth.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !auth.IsProtectedPath(path) {
				return next(c)
			}

			if target, redirect := auth.RedirectFor(path, authorizer.IsAdmin(c.Request())); redirect {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}
