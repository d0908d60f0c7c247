package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func testPolicy() *httpx.Policy {
	return httpx.NewPolicy(
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/health", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodPost, Pattern: "/api/auth/login", Requirement: httpx.Public},
		httpx.Rule{Method: "*", Pattern: "/api/admin/*", Requirement: httpx.Role("ADMIN")},
		httpx.Rule{Method: "*", Pattern: "*", Requirement: httpx.Authenticated},
	)
}

func TestPolicyEvaluate(t *testing.T) {
	p := testPolicy()
	user := &httpx.Identity{UserID: 1, Subject: "a@x.com", Roles: []string{"USER"}}
	admin := &httpx.Identity{UserID: 2, Subject: "b@x.com", Roles: []string{"ADMIN"}}

	tests := []struct {
		name   string
		method string
		path   string
		id     *httpx.Identity
		want   httpx.Decision
	}{
		{"public route anonymous", http.MethodGet, "/api/health", nil, httpx.Allow},
		{"public is method specific", http.MethodPut, "/api/health", nil, httpx.Unauthorized},
		{"login anonymous", http.MethodPost, "/api/auth/login", nil, httpx.Allow},
		{"default requires auth", http.MethodGet, "/api/journal/all", nil, httpx.Unauthorized},
		{"default allows authenticated", http.MethodGet, "/api/journal/all", user, httpx.Allow},
		{"admin prefix anonymous", http.MethodGet, "/api/admin/users", nil, httpx.Unauthorized},
		{"admin prefix wrong role", http.MethodGet, "/api/admin/users", user, httpx.Forbidden},
		{"admin prefix right role", http.MethodGet, "/api/admin/users", admin, httpx.Allow},
		{"admin prefix root match", http.MethodGet, "/api/admin", admin, httpx.Allow},
		{"preflight always allowed", http.MethodOptions, "/api/admin/users", nil, httpx.Allow},
		{"unmatched falls back to authenticated", http.MethodGet, "/other", nil, httpx.Unauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, p.Evaluate(tt.method, tt.path, tt.id))
		})
	}
}

func TestPolicyFirstMatchWins(t *testing.T) {
	// A specific public rule listed before a broader restricted one governs.
	p := httpx.NewPolicy(
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/admin/ping", Requirement: httpx.Public},
		httpx.Rule{Method: "*", Pattern: "/api/admin/*", Requirement: httpx.Role("ADMIN")},
	)

	require.Equal(t, httpx.Allow, p.Evaluate(http.MethodGet, "/api/admin/ping", nil))
	require.Equal(t, httpx.Unauthorized, p.Evaluate(http.MethodGet, "/api/admin/users", nil))
}

func TestPolicyMiddleware(t *testing.T) {
	p := testPolicy()

	invoked := false
	handler := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			invoked = true
			w.WriteHeader(http.StatusOK)
		}),
		httpx.PolicyMiddleware(p),
	)

	t.Run("unauthorized body is fixed json", func(t *testing.T) {
		invoked = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/journal/all", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.False(t, invoked, "handler must never be invoked on rejection")
	})

	t.Run("forbidden hides required role", func(t *testing.T) {
		invoked = false
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		id := httpx.Identity{UserID: 1, Subject: "a@x.com", Roles: []string{"USER"}}
		req = req.WithContext(httpx.WithIdentity(req.Context(), id))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
		require.False(t, invoked)
	})

	t.Run("allowed request reaches handler", func(t *testing.T) {
		invoked = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, invoked)
	})

	t.Run("preflight reaches handler", func(t *testing.T) {
		invoked = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/admin/users", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, invoked)
	})
}
