package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrResetPasswordCommandIsNotConstructed = errors.New(
	"ResetPasswordCommand must be created via NewResetPasswordCommand constructor",
)

// ResetPasswordCommand changes the caller's own password.
type ResetPasswordCommand struct {
	caller      identity.Identity
	oldPassword string
	newPassword string

	guard guard.ConstructorGuard
}

func NewResetPasswordCommand(caller identity.Identity, oldPassword, newPassword string) (ResetPasswordCommand, error) {
	var oldErr, newErr error
	if oldPassword == "" {
		oldErr = errs.NewValueIsRequiredError("oldPassword")
	}
	if newPassword == "" {
		newErr = errs.NewValueIsRequiredError("newPassword")
	}
	if err := errors.Join(caller.Validate(), oldErr, newErr); err != nil {
		return ResetPasswordCommand{}, err
	}

	return ResetPasswordCommand{
		caller:      caller,
		oldPassword: oldPassword,
		newPassword: newPassword,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ResetPasswordCommand) Validate() error {
	return c.guard.Validate(ErrResetPasswordCommandIsNotConstructed)
}

func (c ResetPasswordCommand) Caller() identity.Identity {
	return c.caller
}

func (c ResetPasswordCommand) OldPassword() string {
	return c.oldPassword
}

func (c ResetPasswordCommand) NewPassword() string {
	return c.newPassword
}
