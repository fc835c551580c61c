// Package identity models the authenticated caller of a request.
//
// An Identity is materialized from a verified access token for the duration of one
// request. It is never persisted and never mutated.
package identity

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity constructor")

// Identity is the subject id and role of the caller.
type Identity struct {
	subjectID kernel.UUID
	role      Role

	guard guard.ConstructorGuard
}

// NewIdentity validates both parts and returns an Identity.
func NewIdentity(subjectID kernel.UUID, role Role) (Identity, error) {
	if err := errors.Join(subjectID.Validate(), role.Validate()); err != nil {
		return Identity{}, err
	}
	return Identity{
		subjectID: subjectID,
		role:      role,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the identity was built via NewIdentity.
func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}

func (i Identity) SubjectID() kernel.UUID {
	return i.subjectID
}

func (i Identity) Role() Role {
	return i.role
}

// IsAdministrator reports whether the caller holds ADMIN or SUPER_ADMIN.
func (i Identity) IsAdministrator() bool {
	return i.role.IsAdministrator()
}

// Is reports whether the caller is the subject id.
func (i Identity) Is(subjectID kernel.UUID) bool {
	return i.subjectID.IsEqual(subjectID)
}
