package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"
)

// CreateParcelCommandHandler creates a parcel in Requested for the calling sender.
// The receiver must be an existing account.
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewCreateParcelCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Sender(), services.ActionCreateParcel, services.Target{}); err != nil {
		return err
	}

	now := h.clock.Now()
	p, err := parcel.NewParcel(
		cmd.ParcelID(),
		parcel.GenerateTrackingID(now),
		cmd.Sender().SubjectID(),
		cmd.ReceiverID(),
		cmd.Details(),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.UserRepository().Get(ctx, cmd.ReceiverID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewObjectNotFoundErrorWithCause("receiver", cmd.ReceiverID(), err)
		}
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
