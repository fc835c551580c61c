package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetStatusLogQueryIsNotConstructed = errors.New(
	"GetStatusLogQuery must be created via NewGetStatusLogQuery constructor",
)

// GetStatusLogQuery reads the status log of one parcel on behalf of caller.
type GetStatusLogQuery struct {
	parcelID kernel.UUID
	caller   identity.Identity

	guard guard.ConstructorGuard
}

func NewGetStatusLogQuery(parcelID kernel.UUID, caller identity.Identity) (GetStatusLogQuery, error) {
	if err := errors.Join(parcelID.Validate(), caller.Validate()); err != nil {
		return GetStatusLogQuery{}, err
	}
	return GetStatusLogQuery{parcelID: parcelID, caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStatusLogQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusLogQueryIsNotConstructed)
}

func (q GetStatusLogQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

func (q GetStatusLogQuery) Caller() identity.Identity {
	return q.caller
}
