package models

// RoleType defines the user role type. Roles form a closed set; authorization
// decisions match on these constants, never on free-form strings.
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleStudent    RoleType = "STUDENT"
)

// ParseRoleType maps a role name to the enum, reporting whether it is known.
func ParseRoleType(s string) (RoleType, bool) {
	switch RoleType(s) {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return RoleType(s), true
	}
	return "", false
}

// ResultStatus is the outcome of a graded exam attempt.
type ResultStatus string

const (
	StatusPass ResultStatus = "PASS"
	StatusFail ResultStatus = "FAIL"
)
