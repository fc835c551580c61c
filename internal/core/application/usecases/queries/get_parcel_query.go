package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery reads one parcel with its status log on behalf of caller.
type GetParcelQuery struct {
	parcelID kernel.UUID
	caller   identity.Identity

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(parcelID kernel.UUID, caller identity.Identity) (GetParcelQuery, error) {
	if err := errors.Join(parcelID.Validate(), caller.Validate()); err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{parcelID: parcelID, caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

func (q GetParcelQuery) Caller() identity.Identity {
	return q.caller
}
