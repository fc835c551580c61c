package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand irreversibly removes a parcel and its status log.
type DeleteParcelCommand struct {
	parcelID kernel.UUID
	caller   identity.Identity

	guard guard.ConstructorGuard
}

func NewDeleteParcelCommand(parcelID kernel.UUID, caller identity.Identity) (DeleteParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), caller.Validate()); err != nil {
		return DeleteParcelCommand{}, err
	}

	return DeleteParcelCommand{
		parcelID: parcelID,
		caller:   caller,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

func (c DeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c DeleteParcelCommand) Caller() identity.Identity {
	return c.caller
}
