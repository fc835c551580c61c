package commands

import (
	"context"
	"errors"
	"log/slog"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// SeedSuperAdminCommandHandler creates a verified SUPER_ADMIN account when no account
// with the configured email exists. An existing account is left untouched.
type SeedSuperAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewSeedSuperAdminCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock kernel.Clock,
	logger *slog.Logger,
) SeedSuperAdminCommandHandler {
	return SeedSuperAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "SeedSuperAdminCommandHandler"),
	}
}

func (h SeedSuperAdminCommandHandler) Handle(ctx context.Context, cmd SeedSuperAdminCommand) error {
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
	_, err := repo.GetByEmail(ctx, cmd.Email())
	if err == nil {
		h.logger.DebugContext(ctx, "super admin already exists")
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	hash, err := hashPassword(h.hasher, cmd.Password())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	admin, err := user.NewUser(
		kernel.NewUUID(),
		user.Profile{Name: superAdminName, Email: cmd.Email()},
		hash,
		identity.RoleSuperAdmin,
		now,
	)
	if err != nil {
		return err
	}
	admin.MarkVerified(now)

	if err = repo.Add(ctx, admin); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "super admin created", "user_id", admin.ID().String())
	return nil
}
