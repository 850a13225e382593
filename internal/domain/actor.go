package domain

// Actor is the request-scoped identity derived from the verified JWT.
// Handlers pass it explicitly into services instead of reaching into
// session-like globals.
type Actor struct {
	UserID string
	DeptID string
	Role   string
	Name   string
}

// Roles known to the institution. Leave submission and faculty search are
// limited to these four.
const (
	RoleFaculty      = "faculty"
	RoleHOD          = "hod"
	RoleCentralAdmin = "central_admin"
	RoleAdmin        = "admin"
)

func (a Actor) CanApplyLeave() bool {
	switch a.Role {
	case RoleFaculty, RoleHOD, RoleCentralAdmin, RoleAdmin:
		return true
	default:
		return false
	}
}
