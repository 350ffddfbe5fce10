package entities

// Role represents a team membership role
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
)

var roleRank = map[Role]int{
	RoleOwner:  4,
	RoleAdmin:  3,
	RoleMember: 2,
	RoleViewer: 1,
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast compares role ranks; unknown roles rank below VIEWER.
func (r Role) AtLeast(minimum Role) bool {
	return roleRank[r] >= roleRank[minimum]
}
