package rbac_test

import (
	"errors"
	"testing"

	"gamevault/pkg/rbac"
)

func validBaseConfig() rbac.Config {
	return rbac.Config{
		Roles:       []rbac.RoleDefinition{{Name: "admin", Level: 2}, {Name: "user", Level: 1}},
		Permissions: []rbac.Permission{"read", "write"},
		Capabilities: map[rbac.Role][]rbac.Permission{
			"admin": {"read", "write"},
			"user":  {"read"},
		},
	}
}

func TestValidateBaseConfig(t *testing.T) {
	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("base config should be valid: %v", err)
	}
}

func TestValidateEmptyConfig(t *testing.T) {
	cfg := rbac.Config{}
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrNoRoles) {
		t.Fatalf("expected ErrNoRoles, got: %v", err)
	}
}

func TestValidateEmptyPermissions(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Permissions = nil
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrNoPermissions) {
		t.Fatalf("expected ErrNoPermissions, got: %v", err)
	}
}

func TestValidateDuplicateRole(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Roles = append(cfg.Roles, rbac.RoleDefinition{Name: "admin", Level: 3})
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrDuplicateRole) {
		t.Fatalf("expected ErrDuplicateRole, got: %v", err)
	}
}

func TestValidateDuplicateLevel(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Roles = append(cfg.Roles, rbac.RoleDefinition{Name: "auditor", Level: 1})
	cfg.Capabilities["auditor"] = []rbac.Permission{"read"}
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrDuplicateLevel) {
		t.Fatalf("expected ErrDuplicateLevel, got: %v", err)
	}
}

func TestValidateUnknownRoleInCapabilities(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Capabilities["ghost"] = []rbac.Permission{"read"}
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrUnknownRoleInCaps) {
		t.Fatalf("expected ErrUnknownRoleInCaps, got: %v", err)
	}
}

func TestValidateUnknownPermissionInCapabilities(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Capabilities["user"] = []rbac.Permission{"fly"}
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrUnknownPermInCaps) {
		t.Fatalf("expected ErrUnknownPermInCaps, got: %v", err)
	}
}

func TestValidateRoleWithoutCapabilities(t *testing.T) {
	cfg := validBaseConfig()
	delete(cfg.Capabilities, "user")
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrRoleWithoutCaps) {
		t.Fatalf("expected ErrRoleWithoutCaps, got: %v", err)
	}
}

func TestValidateEmptyCapabilitySet(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Capabilities["user"] = nil
	if err := cfg.Validate(); !errors.Is(err, rbac.ErrEmptyCapabilitySet) {
		t.Fatalf("expected ErrEmptyCapabilitySet, got: %v", err)
	}
}
