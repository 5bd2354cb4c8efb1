// File: internal/common/roles.go
package common

// Role is the closed set of account roles known to the system.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a raw string onto a known role. Unknown values are rejected
// rather than passed through, so authorization decisions never see a role
// outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
