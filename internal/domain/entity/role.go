// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
)

// Role represents the partition an identity lives in.
type Role string

const (
	// RoleStudent indicates an identity stored in the student partition.
	RoleStudent Role = "student"
	// RoleTeacher indicates an identity stored in the teacher partition.
	RoleTeacher Role = "teacher"
)

// LookupOrder is the order in which partitions are searched at login.
// The first partition holding the email wins, so students take priority.
var LookupOrder = Roles{RoleStudent, RoleTeacher}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	default:
		return false
	}
}

// Label returns the name the campus uses for the role in user-facing text.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Alumno"
	case RoleTeacher:
		return "Profesor"
	default:
		return ""
	}
}

// ParseRole converts s into a Role. Matching is exact: "Student" is not a role.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
