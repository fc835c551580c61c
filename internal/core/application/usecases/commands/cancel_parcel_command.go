package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand is a sender's request to cancel their parcel.
type CancelParcelCommand struct {
	parcelID kernel.UUID
	caller   identity.Identity

	guard guard.ConstructorGuard
}

func NewCancelParcelCommand(parcelID kernel.UUID, caller identity.Identity) (CancelParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), caller.Validate()); err != nil {
		return CancelParcelCommand{}, err
	}

	return CancelParcelCommand{
		parcelID: parcelID,
		caller:   caller,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c CancelParcelCommand) Caller() identity.Identity {
	return c.caller
}
