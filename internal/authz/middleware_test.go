package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMiddlewareExecutesRedirect(t *testing.T) {
	mw := Middleware{
		Guard:   newTestGuard(),
		Resolve: func(r *http.Request) *Subject { return nil },
	}
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for unauthenticated request")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/finance", nil))

	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/auth/login", res.Header().Get("Location"))
}

func TestMiddlewareExecutesRewrite(t *testing.T) {
	mw := Middleware{
		Guard: newTestGuard(),
		Resolve: func(r *http.Request) *Subject {
			return subject(RoleInventoryManager, "o-4")
		},
	}

	var seenOutlet string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenOutlet = r.URL.Query().Get("outletId")
		w.WriteHeader(http.StatusOK)
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/inventory?page=1", nil))

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "o-4", seenOutlet)
}

func TestMiddlewarePassesThroughAllowedRequests(t *testing.T) {
	mw := Middleware{
		Guard: newTestGuard(),
		Resolve: func(r *http.Request) *Subject {
			return subject(RoleHR, "o-1")
		},
	}

	called := false
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		// Page routes are never rewritten.
		require.Empty(t, r.URL.Query().Get("outletId"))
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/hr", nil))

	require.True(t, called)
}
