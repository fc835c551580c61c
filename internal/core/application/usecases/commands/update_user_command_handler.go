package commands

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// UpdateUserCommandHandler applies an account patch.
//
// The account is resolved first, then the patch is checked against the account rules
// of the access policy: users may only edit their own profile, role and account state
// need an administrator, and granting SUPER_ADMIN needs a SUPER_ADMIN.
type UpdateUserCommandHandler struct {
	uowFactory UserUoWFactory
	policy     services.AccessPolicy
	hasher     ports.PasswordHasher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewUpdateUserCommandHandler(
	uowFactory UserUoWFactory,
	policy services.AccessPolicy,
	hasher ports.PasswordHasher,
	clock kernel.Clock,
	logger *slog.Logger,
) UpdateUserCommandHandler {
	return UpdateUserCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "UpdateUserCommandHandler"),
	}
}

func (h UpdateUserCommandHandler) Handle(ctx context.Context, cmd UpdateUserCommand) error {
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
	u, err := repo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	patch := cmd.Patch()
	if err = h.policy.AuthorizeUserPatch(cmd.Caller(), u.ID(), patch); err != nil {
		return err
	}

	if pw := cmd.NewPassword(); pw != nil {
		hash, hashErr := hashPassword(h.hasher, *pw)
		if hashErr != nil {
			return hashErr
		}
		patch.PasswordHash = &hash
	}

	if err = u.Apply(patch, h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, u); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if patch.TouchesPrivilegedFields() {
		h.logger.InfoContext(ctx, "account state changed",
			"user_id", u.ID().String(), "by", cmd.Caller().SubjectID().String())
	}
	return nil
}
