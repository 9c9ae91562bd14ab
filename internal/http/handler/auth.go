package handler

import (
	"net/http"

	"gamevault/internal/audit"
	"gamevault/internal/auth"
	"gamevault/internal/config"
	"gamevault/internal/repository"
	apperrors "gamevault/pkg/errors"
	"gamevault/pkg/password"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) verified on failed lookups so a missing
// username costs the same time as a wrong password. The plaintext behind it
// is irrelevant and unknown.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type AuthHandler struct {
	users    repository.UserRepository
	sessions *auth.Manager
	cookie   config.SessionConfig
	audit    *audit.Logger
}

func NewAuthHandler(users repository.UserRepository, sessions *auth.Manager, cookie config.SessionConfig, auditLog *audit.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		cookie:   cookie,
		audit:    auditLog,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login authenticates a username/password pair and binds a new session.
// All failure paths share one outcome and comparable timing, so responses
// reveal nothing about which usernames exist.
func (h *AuthHandler) Login(c echo.Context) error {
	if _, ok := auth.GetPrincipal(c); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Username == "" || req.Password == "" {
		password.Verify(req.Password, dummyBcryptHash)
		h.audit.LoginFailed(req.Username, c.RealIP())
		return apperrors.InvalidCredentials()
	}

	u, err := h.users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		password.Verify(req.Password, dummyBcryptHash)
		h.audit.LoginFailed(req.Username, c.RealIP())
		return apperrors.InvalidCredentials()
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		h.audit.LoginFailed(req.Username, c.RealIP())
		return apperrors.InvalidCredentials()
	}

	token, err := h.sessions.Bind(auth.Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	if err != nil {
		return apperrors.InternalServer(msgSessionCreateFail, err)
	}

	c.SetCookie(h.sessionCookie(token, int(h.cookie.TTL.Seconds())))
	h.audit.LoginSucceeded(u.ID, u.Username, c.RealIP())

	return c.JSON(http.StatusOK, LoginResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	})
}

// Logout clears the session binding and expires the cookie. Logging out
// without a session succeeds with the same response.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.CookieName); err == nil && cookie.Value != "" {
		h.sessions.Clear(cookie.Value)
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.Logout(principal.UserID, principal.Username)
	}

	c.SetCookie(h.sessionCookie("", -1))
	return respondMessage(c, http.StatusOK, msgLoggedOut)
}

// Me returns the authenticated user's current record, including the role
// as stored now rather than as snapshotted at login.
func (h *AuthHandler) Me(c echo.Context) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return apperrors.Unauthenticated("authentication required")
	}

	u, err := h.users.GetByID(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
