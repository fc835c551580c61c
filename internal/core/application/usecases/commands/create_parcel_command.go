package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand is a request by an authenticated sender to ship a parcel.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(kernel.NewUUID(), caller, receiverID,
//	    parcel.Details{Weight: 5, Fee: 10, PickupAddress: "Dhaka", DeliveryAddress: "Khulna"})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateParcelCommand struct {
	parcelID   kernel.UUID
	sender     identity.Identity
	receiverID kernel.UUID
	details    parcel.Details

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand checks the identifiers. Weight and fee are checked by the aggregate.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	sender identity.Identity,
	receiverID kernel.UUID,
	details parcel.Details,
) (CreateParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), sender.Validate(), receiverID.Validate()); err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{
		parcelID:   parcelID,
		sender:     sender,
		receiverID: receiverID,
		details:    details,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c CreateParcelCommand) Sender() identity.Identity {
	return c.sender
}

func (c CreateParcelCommand) ReceiverID() kernel.UUID {
	return c.receiverID
}

func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}
