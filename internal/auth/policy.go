// File: internal/auth/policy.go
package auth

import "clinic_backend/internal/common"

// Operation names a role-gated API operation.
type Operation string

const (
	OpListAppointments   Operation = "appointments.list"
	OpCancelAppointment  Operation = "appointments.cancel"
	OpEditAppointment    Operation = "appointments.edit"
	OpManageDoctors      Operation = "doctors.manage"
	OpListContactInbox   Operation = "contact.list"
	OpCreateStaffAccount Operation = "users.create_staff"
)

// policy is the single authorization table mapping operations onto the roles
// allowed to perform them. Operations absent from the table are denied for
// every role.
var policy = map[Operation][]common.Role{
	OpListAppointments:   {common.RolePatient, common.RoleDoctor, common.RoleAdmin},
	OpCancelAppointment:  {common.RolePatient},
	OpEditAppointment:    {common.RolePatient},
	OpManageDoctors:      {common.RoleAdmin},
	OpListContactInbox:   {common.RoleAdmin},
	OpCreateStaffAccount: {common.RoleAdmin},
}

// AllowedRoles returns the roles permitted to perform op. An empty slice
// means deny for everyone.
func AllowedRoles(op Operation) []common.Role {
	roles, ok := policy[op]
	if !ok {
		return nil
	}
	out := make([]common.Role, len(roles))
	copy(out, roles)
	return out
}

// Allowed reports whether role may perform op.
func Allowed(op Operation, role common.Role) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}
