package handler

import (
	"net/http"

	"gamevault/internal/audit"
	"gamevault/internal/auth"
	"gamevault/internal/domain/user"
	"gamevault/internal/repository"
	apperrors "gamevault/pkg/errors"
	"gamevault/pkg/password"
	"gamevault/pkg/rbac"
	"gamevault/pkg/validator"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the user management surface. Routes are gated on the
// manage_users permission, so only admins reach these.
type UserHandler struct {
	users    repository.UserRepository
	sessions *auth.Manager
	hasher   *password.Hasher
	checker  *rbac.Checker
	audit    *audit.Logger
}

func NewUserHandler(users repository.UserRepository, sessions *auth.Manager, hasher *password.Hasher, checker *rbac.Checker, auditLog *audit.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		checker:  checker,
		audit:    auditLog,
	}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	u, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.Username(req.Username); err != nil {
		return apperrors.Validation(err.Error())
	}
	if err := validator.Password(req.Password); err != nil {
		return apperrors.Validation(err.Error())
	}

	role, err := h.checker.ValidateRole(req.Role)
	if err != nil {
		return apperrors.Validation(err.Error())
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.InternalServer(msgPasswordProcessFail, err)
	}

	u, err := h.users.Create(c.Request().Context(), user.CreateUserInput{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err != nil {
		return err
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.UserCreated(principal.UserID, u.ID, u.Username, string(u.Role))
	}

	return c.JSON(http.StatusCreated, u)
}

// UpdateRole changes a user's role and revokes their sessions so the old
// role cannot outlive the change. Changing one's own role is rejected.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	principal, _ := auth.GetPrincipal(c)
	if principal.UserID == id {
		return apperrors.BadRequest(msgCannotChangeOwnRole)
	}

	var req UpdateRoleRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	role, err := h.checker.ValidateRole(req.Role)
	if err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := h.users.UpdateRole(c.Request().Context(), id, role); err != nil {
		return err
	}

	h.sessions.ClearUser(id)
	h.audit.RoleChanged(principal.UserID, id, string(role))

	return respondMessage(c, http.StatusOK, msgRoleUpdated)
}

// Delete removes a user and revokes their sessions. Self-deletion is
// rejected so the last admin cannot lock the system by accident.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	principal, _ := auth.GetPrincipal(c)
	if principal.UserID == id {
		return apperrors.BadRequest(msgCannotDeleteSelf)
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.sessions.ClearUser(id)
	h.audit.UserDeleted(principal.UserID, id)

	return respondMessage(c, http.StatusOK, msgUserDeleted)
}
