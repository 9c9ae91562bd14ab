package auth

import (
	"net/http"
	"strings"

	"gamevault/internal/audit"
	apperrors "gamevault/pkg/errors"
	"gamevault/pkg/rbac"

	"github.com/labstack/echo/v4"
)

// LoadSession resolves the session cookie into a principal and stores it on
// the request context. Requests without a valid session pass through
// unauthenticated; gating is left to RequirePermission.
func LoadSession(manager *Manager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err == nil && cookie.Value != "" {
				if principal, ok := manager.Resolve(cookie.Value); ok {
					c.Set(principalContextKey, principal)
				}
			}
			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated principal for the request, if any.
func GetPrincipal(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(principalContextKey).(Principal)
	return principal, ok
}

// RequirePermission gates a route on a single permission. Anonymous browser
// requests are redirected to the login page; anonymous API requests get 401.
// Authenticated principals lacking the permission get 403 and the denial is
// recorded as an audit event. The check runs per request, so a role change
// takes effect on the next request.
func RequirePermission(checker *rbac.Checker, perm rbac.Permission, log *audit.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				if wantsHTML(c.Request()) {
					return c.Redirect(http.StatusSeeOther, loginPath)
				}
				return apperrors.Unauthenticated(msgAuthenticationRequired)
			}

			if err := checker.Authorize(principal.Role, perm); err != nil {
				log.AccessDenied(principal.UserID, principal.Username, string(principal.Role),
					c.Request().Method, c.Request().URL.Path)
				return apperrors.Unauthorized(msgPermissionDenied)
			}

			return next(c)
		}
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), echo.MIMETextHTML)
}
