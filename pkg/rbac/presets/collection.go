package presets

import "gamevault/pkg/rbac"

// Collection roles.
const (
	RoleAdmin  rbac.Role = "admin"
	RoleEditor rbac.Role = "editor"
	RoleViewer rbac.Role = "viewer"
)

// Collection permissions.
const (
	PermissionView        rbac.Permission = "view"
	PermissionCreate      rbac.Permission = "create"
	PermissionEdit        rbac.Permission = "edit"
	PermissionDelete      rbac.Permission = "delete"
	PermissionManageUsers rbac.Permission = "manage_users"
)

// Collection returns the RBAC configuration for the collection service.
//
// Role hierarchy:
//
//	admin  (3) — full access, including user management
//	editor (2) — view, create and edit records
//	viewer (1) — read-only
func Collection() rbac.Config {
	return rbac.Config{
		Roles: []rbac.RoleDefinition{
			{Name: RoleAdmin, Level: 3},
			{Name: RoleEditor, Level: 2},
			{Name: RoleViewer, Level: 1},
		},
		Permissions: []rbac.Permission{
			PermissionView,
			PermissionCreate,
			PermissionEdit,
			PermissionDelete,
			PermissionManageUsers,
		},
		Capabilities: map[rbac.Role][]rbac.Permission{
			RoleAdmin: {
				PermissionView,
				PermissionCreate,
				PermissionEdit,
				PermissionDelete,
				PermissionManageUsers,
			},
			RoleEditor: {
				PermissionView,
				PermissionCreate,
				PermissionEdit,
			},
			RoleViewer: {
				PermissionView,
			},
		},
	}
}

// Derived predicates. These route through the same capability table as
// Checker.Authorize, so they can never disagree with a gate decision for
// the same permission.

// IsAdmin reports whether the role is at least admin.
func IsAdmin(rc *rbac.Checker, role rbac.Role) bool {
	return rc.IsRoleElevated(role, RoleAdmin)
}

// IsEditorOrAdmin reports whether the role is at least editor.
func IsEditorOrAdmin(rc *rbac.Checker, role rbac.Role) bool {
	return rc.IsRoleElevated(role, RoleEditor)
}

func CanView(rc *rbac.Checker, role rbac.Role) bool {
	return rc.HasPermission(role, PermissionView)
}

func CanCreate(rc *rbac.Checker, role rbac.Role) bool {
	return rc.HasPermission(role, PermissionCreate)
}

func CanEdit(rc *rbac.Checker, role rbac.Role) bool {
	return rc.HasPermission(role, PermissionEdit)
}

func CanDelete(rc *rbac.Checker, role rbac.Role) bool {
	return rc.HasPermission(role, PermissionDelete)
}

func CanManageUsers(rc *rbac.Checker, role rbac.Role) bool {
	return rc.HasPermission(role, PermissionManageUsers)
}
