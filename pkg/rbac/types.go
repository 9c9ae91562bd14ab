package rbac

// Role represents a user's role in the system (hierarchical)
type Role string

// Permission represents a named operation a role may perform
type Permission string

// RoleDefinition declares a role and its privilege level. Higher levels
// dominate lower levels in elevation checks.
type RoleDefinition struct {
	Name  Role
	Level int
}

// Config declares the closed role and permission enumerations and the
// role → permission capability table. It is validated once at construction
// and never mutated afterwards.
type Config struct {
	Roles        []RoleDefinition
	Permissions  []Permission
	Capabilities map[Role][]Permission
}
