package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// DeleteParcelCommandHandler hard-deletes a parcel. Only administrators may delete;
// deleting a missing id fails with NotFound.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	policy     services.AccessPolicy
}

func NewDeleteParcelCommandHandler(uowFactory ParcelUoWFactory, policy services.AccessPolicy) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Caller(), services.ActionDeleteParcel, services.Target{}); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ParcelRepository().Delete(ctx, cmd.ParcelID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
