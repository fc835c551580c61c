package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var ErrUpdateParcelCommandIsNotConstructed = errors.New(
	"UpdateParcelCommand must be created via NewUpdateParcelCommand constructor",
)

// UpdateParcelCommand is an administrative patch of a parcel.
type UpdateParcelCommand struct {
	parcelID kernel.UUID
	caller   identity.Identity
	patch    parcel.Patch

	guard guard.ConstructorGuard
}

func NewUpdateParcelCommand(parcelID kernel.UUID, caller identity.Identity, patch parcel.Patch) (UpdateParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), caller.Validate()); err != nil {
		return UpdateParcelCommand{}, err
	}

	return UpdateParcelCommand{
		parcelID: parcelID,
		caller:   caller,
		patch:    patch,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateParcelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelCommandIsNotConstructed)
}

func (c UpdateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c UpdateParcelCommand) Caller() identity.Identity {
	return c.caller
}

func (c UpdateParcelCommand) Patch() parcel.Patch {
	return c.patch
}
