package identity

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Role is the role an account holds. Values are persisted and carried in tokens as-is.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleGuide exists in the user domain and carries no role-based rights on parcels.
	RoleGuide Role = "GUIDE"
)

// ParseRole converts a stored or transported role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate reports whether r is one of the known roles.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin, RoleGuide:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// IsAdministrator reports whether r is ADMIN or SUPER_ADMIN.
func (r Role) IsAdministrator() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) String() string {
	return string(r)
}
