package httpx_test

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	identity httpx.Identity
	err      error
	calls    int
}

func (f *fakeResolver) Resolve(_ context.Context, claims jwtx.Claims) (httpx.Identity, error) {
	f.calls++
	if f.err != nil {
		return httpx.Identity{}, f.err
	}
	return f.identity, nil
}

func newCodec(t *testing.T) *jwtx.Codec {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return jwtx.NewCodec(key, time.Hour)
}

// echoIdentity records whatever identity the middleware installed.
func echoIdentity(got **httpx.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := httpx.IdentityFromContext(r.Context()); ok {
			*got = &id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	codec := newCodec(t)

	t.Run("no header proceeds anonymously", func(t *testing.T) {
		resolver := &fakeResolver{}
		var got *httpx.Identity
		h := httpx.Chain(echoIdentity(&got), httpx.AuthnMiddleware(codec, resolver))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, got)
		require.Zero(t, resolver.calls)
	})

	t.Run("non-bearer scheme proceeds anonymously", func(t *testing.T) {
		resolver := &fakeResolver{}
		var got *httpx.Identity
		h := httpx.Chain(echoIdentity(&got), httpx.AuthnMiddleware(codec, resolver))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, got)
	})

	t.Run("invalid token proceeds anonymously without resolving", func(t *testing.T) {
		resolver := &fakeResolver{}
		var got *httpx.Identity
		h := httpx.Chain(echoIdentity(&got), httpx.AuthnMiddleware(codec, resolver))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, got)
		require.Zero(t, resolver.calls)
	})

	t.Run("resolution failure proceeds anonymously", func(t *testing.T) {
		resolver := &fakeResolver{err: errors.New("user no longer exists")}
		var got *httpx.Identity
		h := httpx.Chain(echoIdentity(&got), httpx.AuthnMiddleware(codec, resolver))

		token, err := codec.Issue(42, "a@x.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Nil(t, got)
		require.Equal(t, 1, resolver.calls)
	})

	t.Run("valid token installs identity", func(t *testing.T) {
		resolver := &fakeResolver{
			identity: httpx.Identity{UserID: 42, Subject: "a@x.com", Roles: []string{"USER"}},
		}
		var got *httpx.Identity
		h := httpx.Chain(echoIdentity(&got), httpx.AuthnMiddleware(codec, resolver))

		token, err := codec.Issue(42, "a@x.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		require.Equal(t, int64(42), got.UserID)
		require.Equal(t, "a@x.com", got.Subject)
		require.True(t, got.HasRole("USER"))
	})
}

func TestCORSMiddleware(t *testing.T) {
	cfg := httpx.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}
	h := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		httpx.CORSMiddleware(cfg),
	)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/me", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("unknown origin gets no cors headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin request untouched", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
