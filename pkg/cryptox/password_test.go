package cryptox_test

import (
	"strings"
	"testing"

	"github.com/ltj54/restructuring/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("hunter2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("hunter2", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := cryptox.VerifyPassword("hunter3", hash)
		require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
	})

	t.Run("unique salts", func(t *testing.T) {
		other, err := cryptox.HashPassword("hunter2")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
	})
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"too few parts": "$argon2id$v=19$m=65536,t=3,p=4$salt",
		"wrong algo":    "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"bad salt":      "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
	}

	for name, hash := range cases {
		t.Run(name, func(t *testing.T) {
			err := cryptox.VerifyPassword("whatever", hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch)
		})
	}
}
