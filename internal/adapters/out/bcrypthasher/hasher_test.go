package bcrypthasher_test

import (
	"strings"
	"testing"

	"parceltrack/internal/adapters/out/bcrypthasher"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h, err := bcrypthasher.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	digest, err := h.Hash("Sup3r$ecret")
	require.NoError(t, err)

	assert.NotEqual(t, "Sup3r$ecret", digest)
	assert.True(t, h.Verify("Sup3r$ecret", digest))
	assert.False(t, h.Verify("sup3r$ecret", digest))
	assert.False(t, h.Verify("Sup3r$ecret", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("", digest))

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHasher_Hash_SaltsEachDigest(t *testing.T) {
	h, err := bcrypthasher.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := h.Hash("Sup3r$ecret")
	require.NoError(t, err)
	second, err := h.Hash("Sup3r$ecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_Hash_RejectsEmptyAndOverlong(t *testing.T) {
	h, err := bcrypthasher.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = h.Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewHasher_RejectsCostOutOfRange(t *testing.T) {
	for _, cost := range []int{0, bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		_, err := bcrypthasher.NewHasher(cost)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "cost %d", cost)
	}
}
