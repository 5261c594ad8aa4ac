package model

// Permissions lists the dashboard areas a role may open.
type Permissions struct {
	ViewStudents    bool
	ViewManagement  bool
	ViewDisciplines bool
	ViewReports     bool
	ViewSettings    bool
}

// PermissionsFor returns the permissions granted to role.
func PermissionsFor(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			ViewStudents:    true,
			ViewManagement:  true,
			ViewDisciplines: true,
			ViewReports:     true,
			ViewSettings:    true,
		}
	case RoleProfessional, RoleTutor:
		return Permissions{
			ViewStudents:    true,
			ViewDisciplines: true,
			ViewReports:     true,
		}
	case RoleFamily:
		return Permissions{
			ViewStudents: true,
			ViewReports:  true,
		}
	default:
		return Permissions{}
	}
}
