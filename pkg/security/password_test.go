package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Low cost keeps the round-trip tests fast; policy checks don't hash at all.
const testCost = 4

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(testCost)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(testCost)

	_, err := hasher.Hash("seven77")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	hasher := NewBcryptHasher(testCost)

	_, err := hasher.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	// Out-of-range costs must still yield a working hasher.
	for _, cost := range []int{-1, 0, 99} {
		hasher := NewBcryptHasher(cost)
		_, err := hasher.Hash("long enough password")
		require.NoError(t, err, "cost %d", cost)
	}
}
