package user

type Role string

const (
	RoleSuperAdmin   Role = "super_admin"   // Platform operator - full access
	RoleCompanyAdmin Role = "company_admin" // HR admin - reviews corrections, approves OT
	RoleEmployee     Role = "employee"      // Regular employee
)

// IsAdmin reports whether the role may review corrections and approve
// overtime sessions.
func (r Role) IsAdmin() bool {
	return r == RoleCompanyAdmin || r == RoleSuperAdmin
}
