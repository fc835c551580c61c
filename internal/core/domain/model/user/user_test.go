package user_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{Name: "Rahim", Email: " Rahim@Example.COM "}, "hash", identity.RoleUser, now)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("should create an active unverified account", func(t *testing.T) {
		u := newUser(t)

		require.NoError(t, u.Validate())
		assert.Equal(t, "rahim@example.com", u.Email())
		assert.Equal(t, identity.RoleUser, u.Role())
		assert.Equal(t, user.Active, u.Activity())
		assert.False(t, u.IsDeleted())
		assert.False(t, u.IsVerified())
		require.NoError(t, u.CanSignIn())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, user.Profile{Email: "nope"}, "", identity.Role("ROOT"), now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "password")
		assert.Contains(t, err.Error(), "role")
	})
}

func TestUser_CanSignIn(t *testing.T) {
	for _, activity := range []user.Activity{user.Inactive, user.Blocked} {
		u := newUser(t)
		require.NoError(t, u.Apply(user.Patch{Activity: &activity}, now))

		err := u.CanSignIn()

		require.ErrorIs(t, err, errs.ErrNotAuthenticated)
	}

	deleted := true
	u := newUser(t)
	require.NoError(t, u.Apply(user.Patch{IsDeleted: &deleted}, now))
	require.ErrorIs(t, u.CanSignIn(), errs.ErrNotAuthenticated)
}

func TestUser_Apply(t *testing.T) {
	t.Run("should update profile and privileged fields", func(t *testing.T) {
		u := newUser(t)
		name, hash, role := "Karim", "new-hash", identity.RoleAdmin
		later := now.Add(time.Hour)

		require.NoError(t, u.Apply(user.Patch{Name: &name, PasswordHash: &hash, Role: &role}, later))

		assert.Equal(t, "Karim", u.Profile().Name)
		assert.Equal(t, "new-hash", u.PasswordHash())
		assert.Equal(t, identity.RoleAdmin, u.Role())
		assert.Equal(t, later, u.UpdatedAt())
		assert.Equal(t, "rahim@example.com", u.Email())
	})

	t.Run("should reject invalid values without mutating", func(t *testing.T) {
		u := newUser(t)
		empty, badRole := "", identity.Role("ROOT")

		err := u.Apply(user.Patch{Name: &empty, Role: &badRole}, now)

		require.Error(t, err)
		assert.Equal(t, "Rahim", u.Profile().Name)
		assert.Equal(t, identity.RoleUser, u.Role())
	})

	t.Run("should report privileged fields", func(t *testing.T) {
		verified := true
		name := "x"

		assert.True(t, user.Patch{IsVerified: &verified}.TouchesPrivilegedFields())
		assert.False(t, user.Patch{Name: &name}.TouchesPrivilegedFields())
	})
}

func TestUser_Identity(t *testing.T) {
	u := newUser(t)

	id, err := u.Identity()

	require.NoError(t, err)
	assert.True(t, id.Is(u.ID()))
	assert.Equal(t, identity.RoleUser, id.Role())
}

func TestParseActivity(t *testing.T) {
	a, err := user.ParseActivity("BLOCKED")
	require.NoError(t, err)
	assert.Equal(t, user.Blocked, a)

	_, err = user.ParseActivity("gone")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
