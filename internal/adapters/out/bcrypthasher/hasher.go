// Package bcrypthasher implements the credential verifier with bcrypt.
package bcrypthasher

import (
	"errors"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var _ ports.PasswordHasher = (*Hasher)(nil)

type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost rounds. The cost must lie within
// bcrypt.MinCost and bcrypt.MaxCost.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errs.NewValueIsOutOfRangeError("cost", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

func (h *Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errs.NewValueIsRequiredError("password")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		// Secrets longer than 72 bytes are rejected rather than truncated.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.NewValueIsOutOfRangeErrorWithCause("password", len(secret), 1, 72, err)
		}
		return "", errs.NewInternalError("hash password", err)
	}
	return string(digest), nil
}

func (h *Hasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
