package rbac

import (
	"errors"
	"fmt"
)

// Config validation errors.
var (
	ErrNoRoles            = errors.New("config must declare at least one role")
	ErrNoPermissions      = errors.New("config must declare at least one permission")
	ErrDuplicateRole      = errors.New("duplicate role definition")
	ErrDuplicateLevel     = errors.New("duplicate role level")
	ErrUnknownRoleInCaps  = errors.New("capability entry references unknown role")
	ErrUnknownPermInCaps  = errors.New("capability entry references unknown permission")
	ErrRoleWithoutCaps    = errors.New("role has no capability entry")
	ErrEmptyCapabilitySet = errors.New("role capability set is empty")
)

// Validate checks the config for internal consistency: unique roles and
// levels, every capability referencing declared roles and permissions, and
// every declared role granted a non-empty permission set.
func (c Config) Validate() error {
	if len(c.Roles) == 0 {
		return ErrNoRoles
	}
	if len(c.Permissions) == 0 {
		return ErrNoPermissions
	}

	seenRoles := make(map[Role]bool, len(c.Roles))
	seenLevels := make(map[int]bool, len(c.Roles))
	for _, rd := range c.Roles {
		if seenRoles[rd.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateRole, rd.Name)
		}
		seenRoles[rd.Name] = true
		if seenLevels[rd.Level] {
			return fmt.Errorf("%w: %d", ErrDuplicateLevel, rd.Level)
		}
		seenLevels[rd.Level] = true
	}

	declaredPerms := make(map[Permission]bool, len(c.Permissions))
	for _, p := range c.Permissions {
		declaredPerms[p] = true
	}

	for role, perms := range c.Capabilities {
		if !seenRoles[role] {
			return fmt.Errorf("%w: %s", ErrUnknownRoleInCaps, role)
		}
		if len(perms) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyCapabilitySet, role)
		}
		for _, p := range perms {
			if !declaredPerms[p] {
				return fmt.Errorf("%w: %s grants %s", ErrUnknownPermInCaps, role, p)
			}
		}
	}

	for _, rd := range c.Roles {
		if _, ok := c.Capabilities[rd.Name]; !ok {
			return fmt.Errorf("%w: %s", ErrRoleWithoutCaps, rd.Name)
		}
	}

	return nil
}
