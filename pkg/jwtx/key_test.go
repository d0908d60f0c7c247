package jwtx_test

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/ltj54/restructuring/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T, n int) []byte {
	t.Helper()
	key := make([]byte, n)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestLoadSigningKey(t *testing.T) {
	raw := randomKey(t, 48)

	t.Run("standard base64", func(t *testing.T) {
		key, err := jwtx.LoadSigningKey(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		require.Equal(t, raw, key)
	})

	t.Run("base64url fallback", func(t *testing.T) {
		// Force bytes that produce '-' or '_' in the URL alphabet.
		urlRaw := append([]byte{0xfb, 0xff, 0xfe}, raw...)
		key, err := jwtx.LoadSigningKey(base64.URLEncoding.EncodeToString(urlRaw))
		require.NoError(t, err)
		require.Equal(t, urlRaw, key)
	})

	t.Run("blank secret", func(t *testing.T) {
		_, err := jwtx.LoadSigningKey("   ")
		require.ErrorIs(t, err, jwtx.ErrSecretMissing)
	})

	t.Run("not base64 at all", func(t *testing.T) {
		_, err := jwtx.LoadSigningKey("!!! definitely not base64 !!!")
		require.ErrorIs(t, err, jwtx.ErrSecretEncoding)
	})

	t.Run("too short", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString(randomKey(t, jwtx.MinKeyBytes-1))
		_, err := jwtx.LoadSigningKey(short)
		require.Error(t, err)
		require.Contains(t, err.Error(), "31 bytes")
	})

	t.Run("exactly 32 bytes", func(t *testing.T) {
		exact := randomKey(t, jwtx.MinKeyBytes)
		key, err := jwtx.LoadSigningKey(base64.StdEncoding.EncodeToString(exact))
		require.NoError(t, err)
		require.Len(t, key, jwtx.MinKeyBytes)
	})
}
