package commands

import (
	"context"
	"errors"
	"log/slog"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// ErrInvalidCredentials is the single error every failed login returns.
var ErrInvalidCredentials = errs.NewNotAuthenticatedError("invalid email or password")

// LoginCommandHandler verifies credentials and issues an access and a refresh token.
//
// Unknown email, wrong password, and deleted or non-active accounts all fail with
// ErrInvalidCredentials; the actual reason is only logged.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
	logger     *slog.Logger
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	logger *slog.Logger,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger.With("component", "LoginCommandHandler"),
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (ports.TokenPair, error) {
	if err := cmd.Validate(); err != nil {
		return ports.TokenPair{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.TokenPair{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.InfoContext(ctx, "login rejected", "reason", "unknown email")
		return ports.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return ports.TokenPair{}, err
	}

	if !h.hasher.Verify(cmd.Password(), u.PasswordHash()) {
		h.logger.InfoContext(ctx, "login rejected", "reason", "wrong password", "user_id", u.ID().String())
		return ports.TokenPair{}, ErrInvalidCredentials
	}

	if err = u.CanSignIn(); err != nil {
		h.logger.WarnContext(ctx, "login rejected", "reason", "account not active", "user_id", u.ID().String())
		return ports.TokenPair{}, ErrInvalidCredentials
	}

	id, err := u.Identity()
	if err != nil {
		return ports.TokenPair{}, err
	}

	pair, err := h.tokens.Issue(id)
	if err != nil {
		return ports.TokenPair{}, errs.NewInternalError("issue tokens", err)
	}

	h.logger.InfoContext(ctx, "login succeeded", "user_id", u.ID().String(), "role", u.Role().String())
	return pair, nil
}
