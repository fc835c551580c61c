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

// RegisterUserCommandHandler creates an ACTIVE, unverified USER account. A taken email
// fails with a ConflictError naming email.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock kernel.Clock,
	logger *slog.Logger,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "RegisterUserCommandHandler"),
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hash, err := hashPassword(h.hasher, cmd.Password())
	if err != nil {
		return err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.Profile(), hash, identity.RoleUser, h.clock.Now())
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

	repo := uow.UserRepository()
	if err = ensureEmailIsFree(ctx, repo, u.Email()); err != nil {
		return err
	}

	if err = repo.Add(ctx, u); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "user registered", "user_id", u.ID().String())
	return nil
}

func ensureEmailIsFree(ctx context.Context, repo ports.UserRepository, email string) error {
	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return errs.NewConflictError("email")
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}

// hashPassword keeps the hasher's client-facing errors, such as a secret longer than
// bcrypt accepts, and wraps anything else as internal.
func hashPassword(hasher ports.PasswordHasher, secret string) (string, error) {
	hash, err := hasher.Hash(secret)
	if err != nil {
		if errs.KindOf(err) != errs.KindInternal {
			return "", err
		}
		return "", errs.NewInternalError("hash password", err)
	}
	return hash, nil
}
