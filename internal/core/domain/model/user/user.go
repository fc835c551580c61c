package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrUserIsNotConstructed is returned when a User was not created through NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	// ErrUserCannotSignIn is returned by CanSignIn for deleted or non-active accounts.
	ErrUserCannotSignIn = errs.NewNotAuthenticatedError("account is deleted or not active")
)

// Profile holds the self-service fields of an account.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Patch is a partial account update. Nil fields are left unchanged.
// PasswordHash must already be hashed.
type Patch struct {
	Name         *string
	Phone        *string
	Address      *string
	PasswordHash *string
	Role         *identity.Role
	Activity     *Activity
	IsDeleted    *bool
	IsVerified   *bool
}

// TouchesPrivilegedFields reports whether the patch changes role or account state.
func (p Patch) TouchesPrivilegedFields() bool {
	return p.Role != nil || p.Activity != nil || p.IsDeleted != nil || p.IsVerified != nil
}

// User is an account that can sign in and own parcels.
type User struct {
	id           kernel.UUID
	profile      Profile
	passwordHash string
	role         identity.Role
	activity     Activity
	isDeleted    bool
	isVerified   bool
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewUser creates an active, unverified account. The email is normalized to lower case.
func NewUser(id kernel.UUID, profile Profile, passwordHash string, role identity.Role, now time.Time) (*User, error) {
	u := &User{
		role:          role,
		activity:      Active,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setProfile(profile),
		u.setPasswordHash(passwordHash),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreUser rebuilds an account from stored state.
func RestoreUser(
	id kernel.UUID,
	profile Profile,
	passwordHash string,
	role identity.Role,
	activity Activity,
	isDeleted, isVerified bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	u := &User{
		role:          role,
		activity:      activity,
		isDeleted:     isDeleted,
		isVerified:    isVerified,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setProfile(profile),
		u.setPasswordHash(passwordHash),
		role.Validate(),
		activity.Validate(),
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Profile() Profile {
	return u.profile
}

func (u *User) Email() string {
	return u.profile.Email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() identity.Role {
	return u.role
}

func (u *User) Activity() Activity {
	return u.activity
}

func (u *User) IsDeleted() bool {
	return u.isDeleted
}

func (u *User) IsVerified() bool {
	return u.isVerified
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// CanSignIn returns ErrUserCannotSignIn unless the account is active and not deleted.
func (u *User) CanSignIn() error {
	if u.isDeleted || u.activity != Active {
		return ErrUserCannotSignIn
	}
	return nil
}

// Identity returns the token identity of the account.
func (u *User) Identity() (identity.Identity, error) {
	return identity.NewIdentity(u.id, u.role)
}

// MarkVerified flags the account as verified.
func (u *User) MarkVerified(now time.Time) {
	u.isVerified = true
	u.updatedAt = now
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(passwordHash string, now time.Time) error {
	if err := u.setPasswordHash(passwordHash); err != nil {
		return err
	}
	u.updatedAt = now
	return nil
}

// Apply applies a patch after validating all of it. Permission checks are the caller's concern.
func (u *User) Apply(patch Patch, now time.Time) error {
	next := u.profile
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Phone != nil {
		next.Phone = *patch.Phone
	}
	if patch.Address != nil {
		next.Address = *patch.Address
	}

	var roleErr, activityErr, hashErr error
	if patch.Role != nil {
		roleErr = patch.Role.Validate()
	}
	if patch.Activity != nil {
		activityErr = patch.Activity.Validate()
	}
	if patch.PasswordHash != nil && *patch.PasswordHash == "" {
		hashErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(validateName(next.Name), roleErr, activityErr, hashErr); err != nil {
		return err
	}

	u.profile = next
	if patch.PasswordHash != nil {
		u.passwordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		u.role = *patch.Role
	}
	if patch.Activity != nil {
		u.activity = *patch.Activity
	}
	if patch.IsDeleted != nil {
		u.isDeleted = *patch.IsDeleted
	}
	if patch.IsVerified != nil {
		u.isVerified = *patch.IsVerified
	}
	u.updatedAt = now
	return nil
}

// NormalizeEmail lower-cases and trims an address the way accounts store it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setProfile(profile Profile) error {
	profile.Email = NormalizeEmail(profile.Email)
	if err := errors.Join(validateName(profile.Name), validateEmail(profile.Email)); err != nil {
		return err
	}
	u.profile = profile
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	return nil
}
