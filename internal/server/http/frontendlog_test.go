package http

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abc", truncate("abcdef", 3))

	t.Run("never splits a rune", func(t *testing.T) {
		s := strings.Repeat("å", 10)
		got := truncate(s, 7)
		require.True(t, utf8.ValidString(got))
		require.Equal(t, 7, utf8.RuneCountInString(got))
	})

	t.Run("cap is in characters", func(t *testing.T) {
		s := strings.Repeat("æ", 5)
		require.Equal(t, s, truncate(s, 5))
	})
}
