package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// UpdateParcelCommandHandler applies an administrative patch. The read, the patch and
// the version-guarded write happen in one transaction; a concurrent writer makes the
// write fail with a ConcurrentModificationError.
type UpdateParcelCommandHandler struct {
	uowFactory  ParcelUoWFactory
	policy      services.AccessPolicy
	attribution parcel.Attribution
	clock       kernel.Clock
}

func NewUpdateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	policy services.AccessPolicy,
	attribution parcel.Attribution,
	clock kernel.Clock,
) UpdateParcelCommandHandler {
	return UpdateParcelCommandHandler{
		uowFactory:  uowFactory,
		policy:      policy,
		attribution: attribution,
		clock:       clock,
	}
}

func (h UpdateParcelCommandHandler) Handle(ctx context.Context, cmd UpdateParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Caller(), services.ActionUpdateParcel, services.Target{}); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	p, err := repo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = p.ApplyUpdate(cmd.Patch(), cmd.Caller().SubjectID(), h.attribution, h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
