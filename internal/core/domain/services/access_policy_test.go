package services_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIdentity(t *testing.T, subject kernel.UUID, role identity.Role) identity.Identity {
	t.Helper()
	id, err := identity.NewIdentity(subject, role)
	require.NoError(t, err)
	return id
}

func TestAccessPolicy_Decide(t *testing.T) {
	policy := services.NewAccessPolicy()
	sender, receiver, stranger := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	target := services.Target{Sender: sender, Receiver: receiver, Status: parcel.Requested}

	type caller struct {
		name     string
		subject  kernel.UUID
		role     identity.Role
		expected map[services.Action]services.Verdict
	}

	all := func(v services.Verdict) map[services.Action]services.Verdict {
		return map[services.Action]services.Verdict{
			services.ActionCreateParcel:   v,
			services.ActionListAllParcels: v,
			services.ActionListMyParcels:  v,
			services.ActionReadParcel:     v,
			services.ActionReadStatusLog:  v,
			services.ActionUpdateParcel:   v,
			services.ActionCancelParcel:   v,
			services.ActionDeleteParcel:   v,
			services.ActionListUsers:      v,
		}
	}

	admin := all(services.Allow)
	admin[services.ActionCancelParcel] = services.Deny

	senderUser := all(services.Deny)
	senderUser[services.ActionCreateParcel] = services.Allow
	senderUser[services.ActionListMyParcels] = services.Allow
	senderUser[services.ActionReadParcel] = services.Allow
	senderUser[services.ActionReadStatusLog] = services.Allow
	senderUser[services.ActionCancelParcel] = services.Allow

	receiverUser := all(services.Deny)
	receiverUser[services.ActionCreateParcel] = services.Allow
	receiverUser[services.ActionListMyParcels] = services.Allow
	receiverUser[services.ActionReadParcel] = services.Allow
	receiverUser[services.ActionReadStatusLog] = services.Allow

	strangerUser := all(services.Deny)
	strangerUser[services.ActionCreateParcel] = services.Allow
	strangerUser[services.ActionListMyParcels] = services.Allow

	guide := all(services.Deny)
	guide[services.ActionListMyParcels] = services.Allow

	senderAdmin := all(services.Allow)

	callers := []caller{
		{"admin", stranger, identity.RoleAdmin, admin},
		{"super admin", stranger, identity.RoleSuperAdmin, admin},
		{"sender", sender, identity.RoleUser, senderUser},
		{"sender with admin role", sender, identity.RoleAdmin, senderAdmin},
		{"receiver", receiver, identity.RoleUser, receiverUser},
		{"stranger", stranger, identity.RoleUser, strangerUser},
		{"guide", stranger, identity.RoleGuide, guide},
		{"guide as sender", sender, identity.RoleGuide, map[services.Action]services.Verdict{
			services.ActionCreateParcel: services.Deny,
			services.ActionReadParcel:   services.Allow,
			services.ActionCancelParcel: services.Allow,
		}},
	}

	for _, c := range callers {
		t.Run(c.name, func(t *testing.T) {
			id := mustIdentity(t, c.subject, c.role)

			for action, verdict := range c.expected {
				first := policy.Decide(id, action, target)
				second := policy.Decide(id, action, target)

				assert.Equal(t, verdict, first.Verdict, "%s", action)
				assert.Equal(t, first, second, "decision for %s must be repeatable", action)
			}
		})
	}

	t.Run("unknown action and missing identity deny", func(t *testing.T) {
		assert.False(t, policy.Decide(mustIdentity(t, sender, identity.RoleSuperAdmin), services.ActionUnknown, target).Allowed())
		assert.False(t, policy.Decide(identity.Identity{}, services.ActionCreateParcel, target).Allowed())
	})
}

func TestAccessPolicy_Authorize(t *testing.T) {
	policy := services.NewAccessPolicy()
	sender, receiver := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should return forbidden for a denied read", func(t *testing.T) {
		err := policy.Authorize(mustIdentity(t, kernel.NewUUID(), identity.RoleUser), services.ActionReadParcel,
			services.Target{Sender: sender, Receiver: receiver, Status: parcel.Requested})

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("should return precondition failed naming the status for the sender", func(t *testing.T) {
		for _, status := range parcel.AllStatuses() {
			err := policy.Authorize(mustIdentity(t, sender, identity.RoleUser), services.ActionCancelParcel,
				services.Target{Sender: sender, Receiver: receiver, Status: status})

			if status.CanBeCancelled() {
				require.NoError(t, err)
				continue
			}
			require.ErrorIs(t, err, errs.ErrPreconditionFailed)
			assert.Contains(t, err.Error(), status.String())
		}
	})

	t.Run("should prefer forbidden over status for a non-sender cancel", func(t *testing.T) {
		err := policy.Authorize(mustIdentity(t, receiver, identity.RoleAdmin), services.ActionCancelParcel,
			services.Target{Sender: sender, Receiver: receiver, Status: parcel.Delivered})

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should return not authenticated for a zero identity", func(t *testing.T) {
		err := policy.Authorize(identity.Identity{}, services.ActionListMyParcels, services.Target{})

		require.ErrorIs(t, err, errs.ErrNotAuthenticated)
	})
}

func TestAccessPolicy_AuthorizeUserPatch(t *testing.T) {
	policy := services.NewAccessPolicy()
	self := kernel.NewUUID()
	other := kernel.NewUUID()
	name := "New Name"
	admin := identity.RoleAdmin
	superAdmin := identity.RoleSuperAdmin
	blocked := user.Blocked

	t.Run("user may update own profile only", func(t *testing.T) {
		caller := mustIdentity(t, self, identity.RoleUser)

		require.NoError(t, policy.AuthorizeUserPatch(caller, self, user.Patch{Name: &name}))
		require.ErrorIs(t, policy.AuthorizeUserPatch(caller, other, user.Patch{Name: &name}), errs.ErrForbidden)
	})

	t.Run("user may not change role or state", func(t *testing.T) {
		caller := mustIdentity(t, self, identity.RoleUser)

		require.ErrorIs(t, policy.AuthorizeUserPatch(caller, self, user.Patch{Role: &admin}), errs.ErrForbidden)
		require.ErrorIs(t, policy.AuthorizeUserPatch(caller, self, user.Patch{Activity: &blocked}), errs.ErrForbidden)
	})

	t.Run("admin may change role but not grant super admin", func(t *testing.T) {
		caller := mustIdentity(t, self, identity.RoleAdmin)

		require.NoError(t, policy.AuthorizeUserPatch(caller, other, user.Patch{Role: &admin, Activity: &blocked}))
		err := policy.AuthorizeUserPatch(caller, other, user.Patch{Role: &superAdmin})
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Contains(t, err.Error(), "SUPER_ADMIN")
	})

	t.Run("super admin may grant super admin", func(t *testing.T) {
		caller := mustIdentity(t, self, identity.RoleSuperAdmin)

		require.NoError(t, policy.AuthorizeUserPatch(caller, other, user.Patch{Role: &superAdmin}))
	})
}
