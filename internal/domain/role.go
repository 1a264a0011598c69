package domain

// Role enumerates session roles. Visitors read, admins mutate.
type Role string

const (
	RoleNone    Role = "NONE"
	RoleVisitor Role = "VISITOR"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is a grantable role.
func (r Role) Valid() bool {
	return r == RoleVisitor || r == RoleAdmin
}

// CanEdit reports whether the role may call mutation entry points.
func (r Role) CanEdit() bool {
	return r == RoleAdmin
}
