package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.True(t, IsValidULID(a))
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "ULIDs generated in sequence sort in creation order")
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID("01HGZ8VNRYXS8QKNJV5GRWPWDQ"))
	assert.False(t, IsValidULID(""))
	assert.False(t, IsValidULID("not-a-ulid"))
	assert.False(t, IsValidULID("01HGZ8VNRYXS8QKNJV5GRWPWD"), "too short")
	assert.False(t, IsValidULID("01HGZ8VNRYXS8QKNJV5GRWPWDU"), "U is outside Crockford base32")
}
