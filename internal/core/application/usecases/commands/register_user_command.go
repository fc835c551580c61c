package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand signs up a new USER account.
type RegisterUserCommand struct {
	userID   kernel.UUID
	profile  user.Profile
	password string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(userID kernel.UUID, profile user.Profile, password string) (RegisterUserCommand, error) {
	var passwordErr error
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(userID.Validate(), passwordErr); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:   userID,
		profile:  profile,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) Profile() user.Profile {
	return c.profile
}

func (c RegisterUserCommand) Password() string {
	return c.password
}
