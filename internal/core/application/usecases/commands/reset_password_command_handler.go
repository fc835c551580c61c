package commands

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// ErrOldPasswordMismatch is returned when the supplied old password is wrong.
var ErrOldPasswordMismatch = errs.NewNotAuthenticatedError("old password does not match")

// ResetPasswordCommandHandler re-hashes and stores a new password after verifying the
// old one. Tokens issued before the change stay valid until they expire.
type ResetPasswordCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewResetPasswordCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock kernel.Clock,
	logger *slog.Logger,
) ResetPasswordCommandHandler {
	return ResetPasswordCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "ResetPasswordCommandHandler"),
	}
}

func (h ResetPasswordCommandHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) error {
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

	repo := uow.UserRepository()
	u, err := repo.Get(ctx, cmd.Caller().SubjectID())
	if err != nil {
		return err
	}

	if !h.hasher.Verify(cmd.OldPassword(), u.PasswordHash()) {
		h.logger.WarnContext(ctx, "password reset rejected", "user_id", u.ID().String())
		return ErrOldPasswordMismatch
	}

	hash, err := hashPassword(h.hasher, cmd.NewPassword())
	if err != nil {
		return err
	}

	if err = u.ChangePassword(hash, h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, u); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "password reset", "user_id", u.ID().String())
	return nil
}
