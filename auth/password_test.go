package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesAndRejects(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("correct horse battery staple")
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	ok, err := ComparePassword("correct horse battery staple", hash)
	req.NoError(err)
	req.True(ok)

	ok, err = ComparePassword("wrong password", hash)
	req.NoError(err)
	req.False(ok)
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	req := require.New(t)

	first, err := HashPassword("same password")
	req.NoError(err)
	second, err := HashPassword("same password")
	req.NoError(err)

	req.NotEqual(first, second)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	_, err := ComparePassword("anything", "not-an-encoded-hash")
	require.Error(t, err)
}
