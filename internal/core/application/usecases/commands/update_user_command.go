package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrUpdateUserCommandIsNotConstructed = errors.New(
	"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
)

// UpdateUserCommand changes an account. newPassword, when set, is hashed by the handler.
type UpdateUserCommand struct {
	userID      kernel.UUID
	caller      identity.Identity
	patch       user.Patch
	newPassword *string

	guard guard.ConstructorGuard
}

func NewUpdateUserCommand(
	userID kernel.UUID,
	caller identity.Identity,
	patch user.Patch,
	newPassword *string,
) (UpdateUserCommand, error) {
	var hashErr, passwordErr error
	if patch.PasswordHash != nil {
		hashErr = errs.NewValueIsInvalidErrorWithCause("password", errors.New("pass the plain password, not a hash"))
	}
	if newPassword != nil && *newPassword == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(userID.Validate(), caller.Validate(), hashErr, passwordErr); err != nil {
		return UpdateUserCommand{}, err
	}

	return UpdateUserCommand{
		userID:      userID,
		caller:      caller,
		patch:       patch,
		newPassword: newPassword,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}

func (c UpdateUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateUserCommand) Caller() identity.Identity {
	return c.caller
}

func (c UpdateUserCommand) Patch() user.Patch {
	return c.patch
}

func (c UpdateUserCommand) NewPassword() *string {
	return c.newPassword
}
