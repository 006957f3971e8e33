// Package entity contains the core business objects of the project.
package entity

import "slices"

// RoleName is the symbolic, unique name of a role.
type RoleName string

const (
	// RoleUser is granted to every self-registered identity.
	RoleUser RoleName = "ROLE_USER"
	// RoleAdmin may register identities with an explicit role.
	RoleAdmin RoleName = "ROLE_ADMIN"
	// RoleService is carried by service access tokens only.
	RoleService RoleName = "ROLE_SERVICE"
)

// String returns the string representation of the RoleName.
func (r RoleName) String() string {
	return string(r)
}

// Role is immutable reference data, created out-of-band.
type Role struct {
	ID          int64
	Name        RoleName
	Description string
}

// Roles is a set of roles attached to an identity.
type Roles []Role

// Names returns the role names in stable order without duplicates.
func (rs Roles) Names() []string {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		name := r.Name.String()
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names
}

// Contains checks if the set holds a role with the given name.
func (rs Roles) Contains(name RoleName) bool {
	return slices.ContainsFunc(rs, func(r Role) bool { return r.Name == name })
}
