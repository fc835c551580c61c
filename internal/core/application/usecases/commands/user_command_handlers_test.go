package commands_test

import (
	"errors"
	"strings"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func userUoW(t *testing.T, commit bool) (*MockUserRepository, *MockUoW, *MockUserUoWFactory) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(repo).Once()
	if commit {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()
	return repo, uow, factory
}

func TestRegisterUserCommandHandler_Handle(t *testing.T) {
	profile := user.Profile{Name: "Rahim", Email: "Rahim@Example.com"}

	t.Run("registers an active user", func(t *testing.T) {
		ctx := t.Context()
		repo, uow, factory := userUoW(t, true)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "Secret#123").Return("hashed", nil).Once()
		repo.On("GetByEmail", ctx, "rahim@example.com").Return(nil, errs.NewObjectNotFoundError("user", "rahim@example.com")).Once()
		repo.On("Add", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.Role() == identity.RoleUser && u.PasswordHash() == "hashed" && u.Activity() == user.Active
		})).Return(nil).Once()
		cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), profile, "Secret#123")
		require.NoError(t, err)

		h := commands.NewRegisterUserCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger())
		require.NoError(t, h.Handle(ctx, cmd))

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		hasher.AssertExpectations(t)
	})

	t.Run("taken email is a conflict naming email", func(t *testing.T) {
		ctx := t.Context()
		repo, uow, factory := userUoW(t, false)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "Secret#123").Return("hashed", nil).Once()
		repo.On("GetByEmail", ctx, "rahim@example.com").Return(mustUser(t, identity.RoleUser), nil).Once()
		cmd, _ := commands.NewRegisterUserCommand(kernel.NewUUID(), profile, "Secret#123")

		err := commands.NewRegisterUserCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "email")
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func tooLongPassword() (string, error) {
	secret := "A1!" + strings.Repeat("é", 69)
	return secret, errs.NewValueIsOutOfRangeErrorWithCause("password", len(secret), 1, 72, errors.New("password length exceeds 72 bytes"))
}

func TestRegisterUserCommandHandler_Handle_HashErrors(t *testing.T) {
	profile := user.Profile{Name: "Rahim", Email: "rahim@example.com"}

	t.Run("password longer than bcrypt accepts is invalid input", func(t *testing.T) {
		secret, hashErr := tooLongPassword()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", secret).Return("", hashErr).Once()
		factory := new(MockUserUoWFactory)
		cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), profile, secret)
		require.NoError(t, err)

		err = commands.NewRegisterUserCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("unexpected hasher failure is internal", func(t *testing.T) {
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "Secret#123").Return("", errors.New("entropy exhausted")).Once()
		cmd, _ := commands.NewRegisterUserCommand(kernel.NewUUID(), profile, "Secret#123")

		err := commands.NewRegisterUserCommandHandler(new(MockUserUoWFactory), hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInternal)
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	})
}

func TestSeedSuperAdminCommandHandler_Handle(t *testing.T) {
	t.Run("creates a verified super admin", func(t *testing.T) {
		ctx := t.Context()
		repo, uow, factory := userUoW(t, true)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "Root#1234").Return("hashed", nil).Once()
		repo.On("GetByEmail", ctx, "root@example.com").Return(nil, errs.NewObjectNotFoundError("user", "root@example.com")).Once()
		repo.On("Add", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.Role() == identity.RoleSuperAdmin && u.IsVerified() && u.Email() == "root@example.com"
		})).Return(nil).Once()
		cmd, err := commands.NewSeedSuperAdminCommand("Root@Example.com", "Root#1234")
		require.NoError(t, err)

		require.NoError(t, commands.NewSeedSuperAdminCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("leaves an existing account alone", func(t *testing.T) {
		ctx := t.Context()
		repo, _, factory := userUoW(t, false)
		hasher := new(MockPasswordHasher)
		repo.On("GetByEmail", ctx, "root@example.com").Return(mustUser(t, identity.RoleSuperAdmin), nil).Once()
		cmd, _ := commands.NewSeedSuperAdminCommand("root@example.com", "Root#1234")

		require.NoError(t, commands.NewSeedSuperAdminCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd))
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		hasher.AssertNotCalled(t, "Hash", mock.Anything)
	})
}

func TestLoginCommandHandler_Handle(t *testing.T) {
	t.Run("issues a token pair", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleAdmin)
		repo, _, factory := userUoW(t, false)
		repo.On("GetByEmail", ctx, "rahim@example.com").Return(u, nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Verify", "Secret#123", "stored-hash").Return(true).Once()
		tokens := new(MockTokenService)
		tokens.On("Issue", mock.MatchedBy(func(id identity.Identity) bool {
			return id.Is(u.ID()) && id.Role() == identity.RoleAdmin
		})).Return(ports.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil).Once()
		cmd, _ := commands.NewLoginCommand("Rahim@example.com", "Secret#123")

		pair, err := commands.NewLoginCommandHandler(factory, hasher, tokens, discardLogger()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, ports.TokenPair{AccessToken: "a", RefreshToken: "r"}, pair)
		tokens.AssertExpectations(t)
	})

	blocked := user.Blocked
	deleted := true
	cases := map[string]func(t *testing.T, repo *MockUserRepository, hasher *MockPasswordHasher){
		"unknown email": func(t *testing.T, repo *MockUserRepository, _ *MockPasswordHasher) {
			repo.On("GetByEmail", t.Context(), "rahim@example.com").Return(nil, errs.NewObjectNotFoundError("user", "x")).Once()
		},
		"wrong password": func(t *testing.T, repo *MockUserRepository, hasher *MockPasswordHasher) {
			repo.On("GetByEmail", t.Context(), "rahim@example.com").Return(mustUser(t, identity.RoleUser), nil).Once()
			hasher.On("Verify", "Secret#123", "stored-hash").Return(false).Once()
		},
		"blocked account": func(t *testing.T, repo *MockUserRepository, hasher *MockPasswordHasher) {
			u := mustUser(t, identity.RoleUser)
			require.NoError(t, u.Apply(user.Patch{Activity: &blocked}, fixedNow))
			repo.On("GetByEmail", t.Context(), "rahim@example.com").Return(u, nil).Once()
			hasher.On("Verify", "Secret#123", "stored-hash").Return(true).Once()
		},
		"deleted account": func(t *testing.T, repo *MockUserRepository, hasher *MockPasswordHasher) {
			u := mustUser(t, identity.RoleUser)
			require.NoError(t, u.Apply(user.Patch{IsDeleted: &deleted}, fixedNow))
			repo.On("GetByEmail", t.Context(), "rahim@example.com").Return(u, nil).Once()
			hasher.On("Verify", "Secret#123", "stored-hash").Return(true).Once()
		},
	}

	for name, arrange := range cases {
		t.Run(name+" fails uniformly", func(t *testing.T) {
			repo, _, factory := userUoW(t, false)
			hasher := new(MockPasswordHasher)
			tokens := new(MockTokenService)
			arrange(t, repo, hasher)
			cmd, _ := commands.NewLoginCommand("rahim@example.com", "Secret#123")

			_, err := commands.NewLoginCommandHandler(factory, hasher, tokens, discardLogger()).Handle(t.Context(), cmd)

			require.ErrorIs(t, err, commands.ErrInvalidCredentials)
			assert.Equal(t, errs.KindNotAuthenticated, errs.KindOf(err))
			tokens.AssertNotCalled(t, "Issue", mock.Anything)
		})
	}
}

func TestRefreshTokenCommandHandler_Handle(t *testing.T) {
	t.Run("rotates for an active account", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		id, _ := u.Identity()
		repo, _, factory := userUoW(t, false)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		tokens := new(MockTokenService)
		mock.InOrder(
			tokens.On("DecodeRefresh", "refresh").Return(id, nil).Once(),
			tokens.On("Rotate", "refresh").Return("new-access", nil).Once(),
		)
		cmd, _ := commands.NewRefreshTokenCommand("refresh")

		access, err := commands.NewRefreshTokenCommandHandler(factory, tokens, discardLogger()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "new-access", access)
	})

	t.Run("expired token is not authenticated", func(t *testing.T) {
		tokens := new(MockTokenService)
		tokens.On("DecodeRefresh", "refresh").Return(identity.Identity{}, errs.NewTokenExpiredError(nil)).Once()
		factory := new(MockUserUoWFactory)
		cmd, _ := commands.NewRefreshTokenCommand("refresh")

		_, err := commands.NewRefreshTokenCommandHandler(factory, tokens, discardLogger()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrNotAuthenticated)
		require.ErrorIs(t, err, errs.ErrTokenExpired)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("inactive account cannot refresh", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		inactive := user.Inactive
		require.NoError(t, u.Apply(user.Patch{Activity: &inactive}, fixedNow))
		id, _ := u.Identity()
		repo, _, factory := userUoW(t, false)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		tokens := new(MockTokenService)
		tokens.On("DecodeRefresh", "refresh").Return(id, nil).Once()
		cmd, _ := commands.NewRefreshTokenCommand("refresh")

		_, err := commands.NewRefreshTokenCommandHandler(factory, tokens, discardLogger()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrNotAuthenticated)
		tokens.AssertNotCalled(t, "Rotate", mock.Anything)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		_, err := commands.NewRefreshTokenCommand("")

		require.ErrorIs(t, err, errs.ErrNotAuthenticated)
	})
}

func TestResetPasswordCommandHandler_Handle(t *testing.T) {
	t.Run("stores the new hash", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		repo, uow, factory := userUoW(t, true)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		repo.On("Update", ctx, u).Return(nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Verify", "Old#1234", "stored-hash").Return(true).Once()
		hasher.On("Hash", "New#1234").Return("new-hash", nil).Once()
		cmd, _ := commands.NewResetPasswordCommand(mustIdentity(t, u.ID(), identity.RoleUser), "Old#1234", "New#1234")

		require.NoError(t, commands.NewResetPasswordCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd))

		assert.Equal(t, "new-hash", u.PasswordHash())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		repo, _, factory := userUoW(t, false)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Verify", "Wrong#1234", "stored-hash").Return(false).Once()
		cmd, _ := commands.NewResetPasswordCommand(mustIdentity(t, u.ID(), identity.RoleUser), "Wrong#1234", "New#1234")

		err := commands.NewResetPasswordCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrOldPasswordMismatch)
		assert.Equal(t, "stored-hash", u.PasswordHash())
	})

	t.Run("new password longer than bcrypt accepts is invalid input", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		repo, uow, factory := userUoW(t, false)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		secret, hashErr := tooLongPassword()
		hasher := new(MockPasswordHasher)
		hasher.On("Verify", "Old#1234", "stored-hash").Return(true).Once()
		hasher.On("Hash", secret).Return("", hashErr).Once()
		cmd, _ := commands.NewResetPasswordCommand(mustIdentity(t, u.ID(), identity.RoleUser), "Old#1234", secret)

		err := commands.NewResetPasswordCommandHandler(factory, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd)

		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
		assert.Equal(t, "stored-hash", u.PasswordHash())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestUpdateUserCommandHandler_Handle(t *testing.T) {
	policy := services.NewAccessPolicy()

	t.Run("user updates own profile and password", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		repo, _, factory := userUoW(t, true)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		repo.On("Update", ctx, u).Return(nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "New#1234").Return("new-hash", nil).Once()
		name, pw := "Karim", "New#1234"
		cmd, err := commands.NewUpdateUserCommand(u.ID(), mustIdentity(t, u.ID(), identity.RoleUser), user.Patch{Name: &name}, &pw)
		require.NoError(t, err)

		require.NoError(t, commands.NewUpdateUserCommandHandler(factory, policy, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd))

		assert.Equal(t, "Karim", u.Profile().Name)
		assert.Equal(t, "new-hash", u.PasswordHash())
	})

	t.Run("password longer than bcrypt accepts is invalid input", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		repo, _, factory := userUoW(t, false)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		secret, hashErr := tooLongPassword()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", secret).Return("", hashErr).Once()
		cmd, _ := commands.NewUpdateUserCommand(u.ID(), mustIdentity(t, u.ID(), identity.RoleUser), user.Patch{}, &secret)

		err := commands.NewUpdateUserCommandHandler(factory, policy, hasher, kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd)

		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("admin cannot grant super admin", func(t *testing.T) {
		ctx := t.Context()
		u := mustUser(t, identity.RoleUser)
		repo, _, factory := userUoW(t, false)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		role := identity.RoleSuperAdmin
		cmd, _ := commands.NewUpdateUserCommand(u.ID(), mustIdentity(t, kernel.NewUUID(), identity.RoleAdmin), user.Patch{Role: &role}, nil)

		err := commands.NewUpdateUserCommandHandler(factory, policy, new(MockPasswordHasher), kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, identity.RoleUser, u.Role())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing account is not found before authorization", func(t *testing.T) {
		ctx := t.Context()
		missing := kernel.NewUUID()
		repo, _, factory := userUoW(t, false)
		repo.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("user", missing)).Once()
		name := "x"
		cmd, _ := commands.NewUpdateUserCommand(missing, mustIdentity(t, kernel.NewUUID(), identity.RoleUser), user.Patch{Name: &name}, nil)

		err := commands.NewUpdateUserCommandHandler(factory, policy, new(MockPasswordHasher), kernel.FixedClock(fixedNow), discardLogger()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("hash in the patch is rejected", func(t *testing.T) {
		hash := "x"
		_, err := commands.NewUpdateUserCommand(kernel.NewUUID(), mustIdentity(t, kernel.NewUUID(), identity.RoleAdmin),
			user.Patch{PasswordHash: &hash}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
