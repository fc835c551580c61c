package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrSeedSuperAdminCommandIsNotConstructed = errors.New(
	"SeedSuperAdminCommand must be created via NewSeedSuperAdminCommand constructor",
)

const superAdminName = "Super Admin"

// SeedSuperAdminCommand makes sure a SUPER_ADMIN account exists at startup.
type SeedSuperAdminCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewSeedSuperAdminCommand(email, password string) (SeedSuperAdminCommand, error) {
	var emailErr, passwordErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return SeedSuperAdminCommand{}, err
	}

	return SeedSuperAdminCommand{
		email:    user.NormalizeEmail(email),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SeedSuperAdminCommand) Validate() error {
	return c.guard.Validate(ErrSeedSuperAdminCommandIsNotConstructed)
}

func (c SeedSuperAdminCommand) Email() string {
	return c.email
}

func (c SeedSuperAdminCommand) Password() string {
	return c.password
}
