package services

import (
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// Action names an operation the access policy rules on.
type Action int

const (
	ActionUnknown Action = iota
	ActionCreateParcel
	ActionListAllParcels
	ActionListMyParcels
	ActionReadParcel
	ActionReadStatusLog
	ActionUpdateParcel
	ActionCancelParcel
	ActionDeleteParcel
	ActionListUsers
	ActionUpdateUser
)

func (a Action) String() string {
	switch a {
	case ActionCreateParcel:
		return "create parcel"
	case ActionListAllParcels:
		return "list all parcels"
	case ActionListMyParcels:
		return "list own parcels"
	case ActionReadParcel:
		return "read parcel"
	case ActionReadStatusLog:
		return "read status log"
	case ActionUpdateParcel:
		return "update parcel"
	case ActionCancelParcel:
		return "cancel parcel"
	case ActionDeleteParcel:
		return "delete parcel"
	case ActionListUsers:
		return "list users"
	case ActionUpdateUser:
		return "update user"
	default:
		return "unknown action"
	}
}

// Verdict is the outcome of a decision. The zero value denies.
type Verdict int

const (
	Deny Verdict = iota
	Allow
)

// Decision is a verdict plus the reason for a denial.
type Decision struct {
	Verdict Verdict
	Reason  string

	// StatusRefused marks a cancel denied only because of the parcel's status.
	StatusRefused bool
}

func (d Decision) Allowed() bool {
	return d.Verdict == Allow
}

// Target carries the ownership fields a decision may depend on. Actions that address
// no resource take the zero Target.
type Target struct {
	Sender   kernel.UUID
	Receiver kernel.UUID
	Status   parcel.Status
	UserID   kernel.UUID
}

// ParcelTarget extracts the fields of p the policy reads. The parcel is never modified.
func ParcelTarget(p *parcel.Parcel) Target {
	return Target{Sender: p.Sender(), Receiver: p.Receiver(), Status: p.CurrentStatus()}
}

// UserTarget addresses an account.
func UserTarget(userID kernel.UUID) Target {
	return Target{UserID: userID}
}

// AccessPolicy reconciles role-based and ownership-based access for parcels and accounts.
//
// Rules, by action:
//
//	create                   USER, ADMIN or SUPER_ADMIN
//	listMine                 any authenticated identity
//	listAll, update, delete  ADMIN or SUPER_ADMIN
//	readOne, readLog         ADMIN or SUPER_ADMIN, the sender, or the receiver
//	cancel                   the sender, while the status allows cancelling
//	listUsers                ADMIN or SUPER_ADMIN
//	updateUser               ADMIN or SUPER_ADMIN, or the account itself
//
// Decide is a pure function of its arguments.
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Decide rules on whether caller may perform action on target.
func (AccessPolicy) Decide(caller identity.Identity, action Action, target Target) Decision {
	if caller.Validate() != nil {
		return deny("caller is not authenticated")
	}

	switch action {
	case ActionCreateParcel:
		switch caller.Role() {
		case identity.RoleUser, identity.RoleAdmin, identity.RoleSuperAdmin:
			return allow()
		default:
			return deny("role may not create parcels")
		}

	case ActionListMyParcels:
		return allow()

	case ActionListAllParcels, ActionUpdateParcel, ActionDeleteParcel, ActionListUsers:
		if caller.IsAdministrator() {
			return allow()
		}
		return deny("requires an administrator")

	case ActionReadParcel, ActionReadStatusLog:
		if caller.IsAdministrator() || caller.Is(target.Sender) || caller.Is(target.Receiver) {
			return allow()
		}
		return deny("caller is neither sender, receiver nor administrator")

	case ActionCancelParcel:
		if !caller.Is(target.Sender) {
			return deny("only the sender can cancel a parcel")
		}
		if !target.Status.CanBeCancelled() {
			return Decision{Verdict: Deny, Reason: "status does not allow cancelling", StatusRefused: true}
		}
		return allow()

	case ActionUpdateUser:
		if caller.IsAdministrator() || caller.Is(target.UserID) {
			return allow()
		}
		return deny("caller may only update their own account")

	default:
		return deny("unknown action")
	}
}

// Authorize converts a denial into an error: NotAuthenticated for an unusable identity,
// PreconditionFailed naming the status for a cancel refused by status, Forbidden otherwise.
func (p AccessPolicy) Authorize(caller identity.Identity, action Action, target Target) error {
	if err := caller.Validate(); err != nil {
		return errs.NewNotAuthenticatedErrorWithCause("no identity", err)
	}

	d := p.Decide(caller, action, target)
	switch {
	case d.Allowed():
		return nil
	case d.StatusRefused:
		return errs.NewPreconditionFailedError(action.String(), target.Status.String())
	default:
		return errs.NewForbiddenError(action.String(), d.Reason)
	}
}

// AuthorizeUserPatch applies the account update rules on top of ActionUpdateUser:
// changing role or account state requires an administrator, and granting SUPER_ADMIN
// requires a SUPER_ADMIN.
func (p AccessPolicy) AuthorizeUserPatch(caller identity.Identity, targetID kernel.UUID, patch user.Patch) error {
	if err := p.Authorize(caller, ActionUpdateUser, UserTarget(targetID)); err != nil {
		return err
	}

	if patch.Role != nil {
		if !caller.IsAdministrator() {
			return errs.NewForbiddenError(ActionUpdateUser.String(), "not allowed to update role")
		}
		if *patch.Role == identity.RoleSuperAdmin && caller.Role() != identity.RoleSuperAdmin {
			return errs.NewForbiddenError(ActionUpdateUser.String(), "only a super admin can grant SUPER_ADMIN")
		}
	}

	if (patch.Activity != nil || patch.IsDeleted != nil || patch.IsVerified != nil) && !caller.IsAdministrator() {
		return errs.NewForbiddenError(ActionUpdateUser.String(), "not allowed to change account state")
	}
	return nil
}

func allow() Decision {
	return Decision{Verdict: Allow}
}

func deny(reason string) Decision {
	return Decision{Verdict: Deny, Reason: reason}
}
