package entity

// Role is the role name the auth service returns on login.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
)

// IsStaffAdmin reports whether the role may manage the clinic.
func (r Role) IsStaffAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// RoleOption is one entry of the staff role dictionary.
type RoleOption struct {
	ID   int
	Name string
}
