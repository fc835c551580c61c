package commands

import (
	"errors"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrRefreshTokenCommandIsNotConstructed = errors.New(
	"RefreshTokenCommand must be created via NewRefreshTokenCommand constructor",
)

// RefreshTokenCommand exchanges a refresh token for a new access token.
type RefreshTokenCommand struct {
	refreshToken string

	guard guard.ConstructorGuard
}

func NewRefreshTokenCommand(refreshToken string) (RefreshTokenCommand, error) {
	if refreshToken == "" {
		return RefreshTokenCommand{}, errs.NewNotAuthenticatedError("no refresh token received")
	}

	return RefreshTokenCommand{
		refreshToken: refreshToken,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RefreshTokenCommand) Validate() error {
	return c.guard.Validate(ErrRefreshTokenCommandIsNotConstructed)
}

func (c RefreshTokenCommand) RefreshToken() string {
	return c.refreshToken
}
