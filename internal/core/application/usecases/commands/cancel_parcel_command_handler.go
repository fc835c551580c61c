package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// CancelParcelCommandHandler cancels a parcel on behalf of its sender.
//
// The parcel is resolved first, so a missing id is NotFound for every caller; a
// caller other than the sender then gets Forbidden, and the sender of a parcel past
// the pickup stage gets a PreconditionFailed error naming the status.
type CancelParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewCancelParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) error {
	if err := cmd.Validate(); err != nil {
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

	if err = h.policy.Authorize(cmd.Caller(), services.ActionCancelParcel, services.ParcelTarget(p)); err != nil {
		return err
	}

	if err = p.Cancel(cmd.Caller().SubjectID(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
