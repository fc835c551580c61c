package commands

import (
	"context"
	"errors"
	"log/slog"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// RefreshTokenCommandHandler rotates an access token. The refresh token is verified
// first, then the account it names must still exist and be allowed to sign in.
// The new access token carries the role recorded in the refresh token.
type RefreshTokenCommandHandler struct {
	uowFactory UserUoWFactory
	tokens     ports.TokenService
	logger     *slog.Logger
}

func NewRefreshTokenCommandHandler(
	uowFactory UserUoWFactory,
	tokens ports.TokenService,
	logger *slog.Logger,
) RefreshTokenCommandHandler {
	return RefreshTokenCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
		logger:     logger.With("component", "RefreshTokenCommandHandler"),
	}
}

func (h RefreshTokenCommandHandler) Handle(ctx context.Context, cmd RefreshTokenCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	id, err := h.tokens.DecodeRefresh(cmd.RefreshToken())
	if err != nil {
		h.logger.InfoContext(ctx, "refresh rejected", "expired", errors.Is(err, errs.ErrTokenExpired))
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().Get(ctx, id.SubjectID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "refresh rejected", "reason", "account does not exist", "user_id", id.SubjectID().String())
		return "", errs.NewNotAuthenticatedErrorWithCause("account does not exist", err)
	}
	if err != nil {
		return "", err
	}

	if err = u.CanSignIn(); err != nil {
		h.logger.WarnContext(ctx, "refresh rejected", "reason", "account not active", "user_id", id.SubjectID().String())
		return "", err
	}

	return h.tokens.Rotate(cmd.RefreshToken())
}
