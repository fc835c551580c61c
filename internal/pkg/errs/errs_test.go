package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrNotAuthenticated)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrConflict)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "not authenticated", errs.ErrNotAuthenticated.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		conflictErr := errs.NewConflictError("trackingId")
		require.ErrorIs(t, conflictErr, errs.ErrConflict)
	})
}

func TestTokenError(t *testing.T) {
	t.Run("expired and malformed share a message", func(t *testing.T) {
		expired := errs.NewTokenExpiredError(errors.New("exp"))
		malformed := errs.NewTokenMalformedError(errors.New("sig"))

		assert.Equal(t, expired.Error(), malformed.Error())
		require.ErrorIs(t, expired, errs.ErrNotAuthenticated)
		require.ErrorIs(t, malformed, errs.ErrNotAuthenticated)
	})

	t.Run("reasons stay distinguishable", func(t *testing.T) {
		expired := errs.NewTokenExpiredError(nil)
		malformed := errs.NewTokenMalformedError(nil)

		require.ErrorIs(t, expired, errs.ErrTokenExpired)
		require.NotErrorIs(t, expired, errs.ErrTokenMalformed)
		require.ErrorIs(t, malformed, errs.ErrTokenMalformed)
		require.NotErrorIs(t, malformed, errs.ErrTokenExpired)
	})
}

func TestPreconditionFailedError(t *testing.T) {
	err := errs.NewPreconditionFailedError("cancel parcel", "Dispatched")

	assert.Equal(t, "cannot cancel parcel with status Dispatched", err.Error())
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
}

func TestConcurrentModificationError(t *testing.T) {
	err := errs.NewConcurrentModificationError("parcel", "abc", 3)

	assert.Equal(t, "concurrent modification: parcel abc changed since version 3", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind errs.Kind
	}{
		{"nil", nil, errs.KindNone},
		{"not authenticated", errs.NewNotAuthenticatedError("no token"), errs.KindNotAuthenticated},
		{"token expired", errs.NewTokenExpiredError(nil), errs.KindNotAuthenticated},
		{"forbidden", errs.NewForbiddenError("delete", "admins only"), errs.KindForbidden},
		{"not found", errs.NewObjectNotFoundError("parcel", "1"), errs.KindNotFound},
		{"invalid", errs.NewValueIsInvalidError("weight"), errs.KindInvalidInput},
		{"required", errs.NewValueIsRequiredError("receiver"), errs.KindInvalidInput},
		{"out of range", errs.NewValueIsOutOfRangeError("fee", -1, 0, 10), errs.KindInvalidInput},
		{"precondition", errs.NewPreconditionFailedError("cancel parcel", "Blocked"), errs.KindInvalidInput},
		{"duplicate", errs.NewConflictError("trackingId"), errs.KindConflict},
		{"version", errs.NewConcurrentModificationError("parcel", "1", 1), errs.KindConflict},
		{"internal", errs.NewInternalError("load parcel", errors.New("boom")), errs.KindInternal},
		{"unknown", errors.New("driver exploded"), errs.KindInternal},
		{"wrapped", fmt.Errorf("handler: %w", errs.NewObjectNotFoundError("parcel", "1")), errs.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, errs.KindOf(tc.err))
		})
	}
}
