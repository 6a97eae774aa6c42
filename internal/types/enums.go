package types

// MemberRole is the role a Profile holds within a List.
type MemberRole string

// List Member Roles
const (
	RoleAdmin MemberRole = "ADMIN"
	RoleGuest MemberRole = "GUEST"
)

// Valid role values for validation
var ValidMemberRoles = []MemberRole{RoleAdmin, RoleGuest}

func (r MemberRole) String() string {
	return string(r)
}

// IsValid reports whether r is one of the known roles.
func (r MemberRole) IsValid() bool {
	for _, v := range ValidMemberRoles {
		if v == r {
			return true
		}
	}
	return false
}

// ParseMemberRole returns the role for s, falling back to def when s is empty.
// The second result is false when s is not a known role.
func ParseMemberRole(s string, def MemberRole) (MemberRole, bool) {
	if s == "" {
		return def, true
	}
	r := MemberRole(s)
	return r, r.IsValid()
}
