package user

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Activity is the account state an administrator controls.
type Activity string

const (
	Active   Activity = "ACTIVE"
	Inactive Activity = "INACTIVE"
	Blocked  Activity = "BLOCKED"
)

// ParseActivity converts a stored or transported value into an Activity.
func ParseActivity(s string) (Activity, error) {
	a := Activity(s)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a Activity) Validate() error {
	switch a {
	case Active, Inactive, Blocked:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("isActive", fmt.Errorf("%q is not a valid account state", string(a)))
	}
}

func (a Activity) String() string {
	return string(a)
}
