package user

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var AllRoles = []Role{
	RoleStudent,
	RoleTeacher,
	RoleAdmin,
}

func (r Role) IsValid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

// IsSelfAssignable reports whether a role may be picked at registration.
// Admins are provisioned from configuration only.
func (r Role) IsSelfAssignable() bool {
	return r == RoleStudent || r == RoleTeacher
}
