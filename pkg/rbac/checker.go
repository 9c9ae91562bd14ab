package rbac

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	ErrDenied          = errors.New("authorization denied")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidRole     = errors.New("invalid role")
)

// Checker provides authorization decisions based on a validated Config.
// It is thread-safe: all internal state is read-only after construction,
// and every decision is a pure function of (role, permission).
type Checker struct {
	config Config

	// Pre-computed lookup tables (all read-only after New)
	roleIndex   map[Role]int                 // role → level
	permsByRole map[Role]map[Permission]bool // O(1) lookup
	validPerms  map[Permission]bool
	validRoles  map[Role]bool
}

// New creates a Checker from a validated Config.
// Returns an error if the config is invalid.
func New(cfg Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := &Checker{config: cfg}
	rc.buildLookups()
	return rc, nil
}

// MustNew creates a Checker and panics on invalid config.
// Use this with known-good presets at init time.
func MustNew(cfg Config) *Checker {
	rc, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("rbac.MustNew: %v", err))
	}
	return rc
}

func (rc *Checker) buildLookups() {
	cfg := rc.config

	rc.roleIndex = make(map[Role]int, len(cfg.Roles))
	rc.validRoles = make(map[Role]bool, len(cfg.Roles))
	for _, rd := range cfg.Roles {
		rc.roleIndex[rd.Name] = rd.Level
		rc.validRoles[rd.Name] = true
	}

	rc.permsByRole = make(map[Role]map[Permission]bool, len(cfg.Capabilities))
	for role, perms := range cfg.Capabilities {
		rc.permsByRole[role] = make(map[Permission]bool, len(perms))
		for _, p := range perms {
			rc.permsByRole[role][p] = true
		}
	}

	rc.validPerms = make(map[Permission]bool, len(cfg.Permissions))
	for _, p := range cfg.Permissions {
		rc.validPerms[p] = true
	}
}

// ---------------------------------------------------------------------------
// Authorization
// ---------------------------------------------------------------------------

// Authorize checks if a role may exercise a permission.
// Returns nil if authorized, an ErrDenied-wrapped error otherwise.
// An unrecognized role has no permissions and is denied (fail-closed),
// never treated as a fault.
func (rc *Checker) Authorize(role Role, perm Permission) error {
	if role == "" {
		return fmt.Errorf("%w: role is empty", ErrDenied)
	}
	if !rc.HasPermission(role, perm) {
		return fmt.Errorf("%w: role '%s' lacks permission '%s'", ErrDenied, role, perm)
	}
	return nil
}

// HasPermission reports whether the role's capability set contains the
// permission. Unknown roles yield an empty set.
func (rc *Checker) HasPermission(role Role, perm Permission) bool {
	perms, ok := rc.permsByRole[role]
	if !ok {
		return false
	}
	return perms[perm]
}

// Permissions returns the fixed permission set granted to a role, in the
// order declared by the config. Unknown roles return nil.
func (rc *Checker) Permissions(role Role) []Permission {
	granted, ok := rc.permsByRole[role]
	if !ok {
		return nil
	}
	out := make([]Permission, 0, len(granted))
	for _, p := range rc.config.Permissions {
		if granted[p] {
			out = append(out, p)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Role helpers
// ---------------------------------------------------------------------------

// IsRoleElevated checks if role1 has equal or higher privilege than role2.
func (rc *Checker) IsRoleElevated(role1, role2 Role) bool {
	level1, exists1 := rc.roleIndex[role1]
	level2, exists2 := rc.roleIndex[role2]
	if !exists1 || !exists2 {
		return false
	}
	return level1 >= level2
}

// ValidateRole validates a role string against configured roles.
func (rc *Checker) ValidateRole(role string) (Role, error) {
	r := Role(role)
	if rc.validRoles[r] {
		return r, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidRole, role)
}

// ValidatePermission validates a permission string against configured values.
func (rc *Checker) ValidatePermission(perm string) (Permission, error) {
	p := Permission(perm)
	if rc.validPerms[p] {
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown permission %s", ErrDenied, perm)
}

// Roles returns the declared roles in config order.
func (rc *Checker) Roles() []Role {
	out := make([]Role, 0, len(rc.config.Roles))
	for _, rd := range rc.config.Roles {
		out = append(out, rd.Name)
	}
	return out
}
